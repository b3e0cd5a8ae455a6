package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arivarton/stamp/internal/filter"
	"github.com/arivarton/stamp/internal/model"
)

const workdaySelect = `
SELECT w.id, w.start, w."end", w.customer_id, w.project_id, w.invoice_id,
       c.name, p.name
FROM workdays w
JOIN customers c ON c.id = w.customer_id
JOIN projects p ON p.id = w.project_id
`

func scanWorkday(row interface{ Scan(...any) error }) (model.Workday, error) {
	var wd model.Workday
	var end sql.NullTime
	var invoiceID sql.NullInt64
	err := row.Scan(&wd.ID, &wd.Start, &end, &wd.CustomerID, &wd.ProjectID,
		&invoiceID, &wd.CustomerName, &wd.ProjectName)
	if err != nil {
		return model.Workday{}, err
	}
	if end.Valid {
		t := end.Time
		wd.End = &t
	}
	if invoiceID.Valid {
		id := invoiceID.Int64
		wd.InvoiceID = &id
	}
	return wd, nil
}

// StampIn creates the current stamp. A workday that is already open
// surfaces as ErrAlreadyStampedIn.
func (s *Store) StampIn(ctx context.Context, wd *model.Workday) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO workdays (start, customer_id, project_id) VALUES (?, ?, ?)`,
		wd.Start, wd.CustomerID, wd.ProjectID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyStampedIn
		}
		return fmt.Errorf("stamp in: %w", err)
	}
	wd.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("stamp in: %w", err)
	}
	return nil
}

// StampOut closes the workday with the given id.
func (s *Store) StampOut(ctx context.Context, id int64, end time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE workdays SET "end" = ? WHERE id = ?`, end, id)
	if err != nil {
		return fmt.Errorf("stamp out: %w", err)
	}
	return requireAffected(res, id)
}

// CurrentStamp returns the single open workday with its tags.
func (s *Store) CurrentStamp(ctx context.Context) (model.Workday, error) {
	row := s.db.QueryRowContext(ctx, workdaySelect+`WHERE w."end" IS NULL`)
	wd, err := scanWorkday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workday{}, ErrNoCurrentStamp
	}
	if err != nil {
		return model.Workday{}, fmt.Errorf("query current stamp: %w", err)
	}
	wd.Tags, err = s.tagsFor(ctx, wd.ID)
	if err != nil {
		return model.Workday{}, err
	}
	return wd, nil
}

// WorkdayByID returns one workday, open or closed, with its tags.
func (s *Store) WorkdayByID(ctx context.Context, id int64) (model.Workday, error) {
	row := s.db.QueryRowContext(ctx, workdaySelect+`WHERE w.id = ?`, id)
	wd, err := scanWorkday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workday{}, fmt.Errorf("workday %d: %w", id, ErrNoMatch)
	}
	if err != nil {
		return model.Workday{}, fmt.Errorf("query workday %d: %w", id, err)
	}
	wd.Tags, err = s.tagsFor(ctx, wd.ID)
	if err != nil {
		return model.Workday{}, err
	}
	return wd, nil
}

// Workdays returns the closed workdays matching the predicate set,
// ordered by start, with tags loaded. A nil set matches everything.
func (s *Store) Workdays(ctx context.Context, f filter.Set) ([]model.Workday, error) {
	where, args, err := whereWorkdays(f)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, workdaySelect+where+` ORDER BY w.start`, args...)
	if err != nil {
		return nil, fmt.Errorf("query workdays: %w", err)
	}
	defer rows.Close()

	var workdays []model.Workday
	for rows.Next() {
		wd, err := scanWorkday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workday: %w", err)
		}
		workdays = append(workdays, wd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workdays: %w", err)
	}

	for i := range workdays {
		workdays[i].Tags, err = s.tagsFor(ctx, workdays[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return workdays, nil
}

// LastWorkday returns the most recently started closed workday. Used
// to default the customer and project when stamping in.
func (s *Store) LastWorkday(ctx context.Context) (model.Workday, error) {
	row := s.db.QueryRowContext(ctx,
		workdaySelect+`WHERE w."end" IS NOT NULL ORDER BY w.start DESC LIMIT 1`)
	wd, err := scanWorkday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workday{}, ErrNoMatch
	}
	if err != nil {
		return model.Workday{}, fmt.Errorf("query last workday: %w", err)
	}
	return wd, nil
}

// UpdateWorkday rewrites the mutable fields of a workday.
func (s *Store) UpdateWorkday(ctx context.Context, wd model.Workday) error {
	var end any
	if wd.End != nil {
		end = *wd.End
	}
	var invoiceID any
	if wd.InvoiceID != nil {
		invoiceID = *wd.InvoiceID
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE workdays SET start = ?, "end" = ?, customer_id = ?, project_id = ?, invoice_id = ?
		 WHERE id = ?`,
		wd.Start, end, wd.CustomerID, wd.ProjectID, invoiceID, wd.ID)
	if err != nil {
		return fmt.Errorf("update workday %d: %w", wd.ID, err)
	}
	return requireAffected(res, wd.ID)
}

// DeleteWorkday removes a workday; its tags cascade.
func (s *Store) DeleteWorkday(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workdays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workday %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// AddTag appends a tag to a workday.
func (s *Store) AddTag(ctx context.Context, tag *model.Tag) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (recorded, note, workday_id) VALUES (?, ?, ?)`,
		tag.Recorded, tag.Note, tag.WorkdayID)
	if err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	tag.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	return nil
}

// DeleteTag removes a single tag from a workday.
func (s *Store) DeleteTag(ctx context.Context, workdayID, tagID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND workday_id = ?`, tagID, workdayID)
	if err != nil {
		return fmt.Errorf("delete tag %d: %w", tagID, err)
	}
	return requireAffected(res, tagID)
}

func (s *Store) tagsFor(ctx context.Context, workdayID int64) ([]model.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded, note, workday_id FROM tags WHERE workday_id = ? ORDER BY recorded`,
		workdayID)
	if err != nil {
		return nil, fmt.Errorf("query tags for workday %d: %w", workdayID, err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Recorded, &t.Note, &t.WorkdayID); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNoMatch)
	}
	return nil
}
