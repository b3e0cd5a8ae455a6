package storage

import (
	"context"
	"fmt"

	"github.com/arivarton/stamp/internal/model"
)

// CreateCustomer inserts a customer and fills in its id.
func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (name, contact_person, org_nr, address, zip_code, mail, phone)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.ContactPerson, c.OrgNr, c.Address, c.ZipCode, c.Mail, c.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %q already exists", c.Name)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// UpdateCustomer rewrites all customer fields.
func (s *Store) UpdateCustomer(ctx context.Context, c model.Customer) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, contact_person = ?, org_nr = ?, address = ?,
		 zip_code = ?, mail = ?, phone = ? WHERE id = ?`,
		c.Name, c.ContactPerson, c.OrgNr, c.Address, c.ZipCode, c.Mail, c.Phone, c.ID)
	if err != nil {
		return fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	return requireAffected(res, c.ID)
}

// CustomerByName looks a customer up case-insensitively.
func (s *Store) CustomerByName(ctx context.Context, name string) (model.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, contact_person, org_nr, address, zip_code, mail, phone
		 FROM customers WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		return model.Customer{}, fmt.Errorf("query customer: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.OrgNr,
			&c.Address, &c.ZipCode, &c.Mail, &c.Phone); err != nil {
			return model.Customer{}, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return model.Customer{}, err
	}
	switch len(customers) {
	case 1:
		return customers[0], nil
	case 0:
		return model.Customer{}, fmt.Errorf("customer %q: %w", name, ErrNoMatch)
	default:
		return model.Customer{}, fmt.Errorf("customer %q: %w", name, ErrTooManyMatches)
	}
}

// CustomerByID returns one customer.
func (s *Store) CustomerByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, contact_person, org_nr, address, zip_code, mail, phone
		 FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.ContactPerson, &c.OrgNr, &c.Address, &c.ZipCode, &c.Mail, &c.Phone)
	if err != nil {
		return model.Customer{}, fmt.Errorf("customer %d: %w", id, ErrNoMatch)
	}
	return c, nil
}

// CreateProject inserts a project under a customer and fills its id.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, link, customer_id) VALUES (?, ?, ?)`,
		p.Name, p.Link, p.CustomerID)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdateProject rewrites the project's name and link.
func (s *Store) UpdateProject(ctx context.Context, p model.Project) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, link = ? WHERE id = ?`, p.Name, p.Link, p.ID)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return requireAffected(res, p.ID)
}

// ProjectByName looks a project up case-insensitively. Names are only
// unique per customer, so several matches are possible.
func (s *Store) ProjectByName(ctx context.Context, name string) (model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, link, customer_id FROM projects WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		return model.Project{}, fmt.Errorf("query project: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Link, &p.CustomerID); err != nil {
			return model.Project{}, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return model.Project{}, err
	}
	switch len(projects) {
	case 1:
		return projects[0], nil
	case 0:
		return model.Project{}, fmt.Errorf("project %q: %w", name, ErrNoMatch)
	default:
		return model.Project{}, fmt.Errorf("project %q: %w", name, ErrTooManyMatches)
	}
}

// ProjectByID returns one project.
func (s *Store) ProjectByID(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, link, customer_id FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Link, &p.CustomerID)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %d: %w", id, ErrNoMatch)
	}
	return p, nil
}

// CustomerIDByName implements filter.Resolver.
func (s *Store) CustomerIDByName(ctx context.Context, name string) (int64, error) {
	c, err := s.CustomerByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// ProjectIDByName implements filter.Resolver.
func (s *Store) ProjectIDByName(ctx context.Context, name string) (int64, error) {
	p, err := s.ProjectByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}
