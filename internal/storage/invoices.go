package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arivarton/stamp/internal/model"
)

// CreateInvoice inserts an invoice and assigns the given workdays to
// it in one transaction. Reassigning workdays that already belong to
// another invoice is the caller's decision; this just writes it.
func (s *Store) CreateInvoice(ctx context.Context, inv *model.Invoice, workdayIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin invoice transaction: %w", err)
	}
	defer tx.Rollback()

	if inv.Created.IsZero() {
		inv.Created = time.Now()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (created, month, year, customer_id) VALUES (?, ?, ?, ?)`,
		inv.Created, inv.Month, inv.Year, inv.CustomerID)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	inv.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	for _, id := range workdayIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE workdays SET invoice_id = ? WHERE id = ?`, inv.ID, id)
		if err != nil {
			return fmt.Errorf("assign workday %d to invoice: %w", id, err)
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateInvoice rewrites the invoice flags and document path.
func (s *Store) UpdateInvoice(ctx context.Context, inv model.Invoice) error {
	var pdf any
	if inv.PDF != "" {
		pdf = inv.PDF
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET pdf = ?, month = ?, year = ?, paid = ?, sent = ? WHERE id = ?`,
		pdf, inv.Month, inv.Year, inv.Paid, inv.Sent, inv.ID)
	if err != nil {
		return fmt.Errorf("update invoice %d: %w", inv.ID, err)
	}
	return requireAffected(res, inv.ID)
}

// InvoiceByID returns one invoice.
func (s *Store) InvoiceByID(ctx context.Context, id int64) (model.Invoice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT i.id, i.created, i.pdf, i.month, i.year, i.paid, i.sent, i.customer_id, c.name
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.id = ?`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, fmt.Errorf("invoice %d: %w", id, ErrNoMatch)
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("query invoice %d: %w", id, err)
	}
	return inv, nil
}

// Invoices returns every invoice, oldest first.
func (s *Store) Invoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.created, i.pdf, i.month, i.year, i.paid, i.sent, i.customer_id, c.name
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.created`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func scanInvoice(row interface{ Scan(...any) error }) (model.Invoice, error) {
	var inv model.Invoice
	var pdf sql.NullString
	err := row.Scan(&inv.ID, &inv.Created, &pdf, &inv.Month, &inv.Year,
		&inv.Paid, &inv.Sent, &inv.CustomerID, &inv.CustomerName)
	if err != nil {
		return model.Invoice{}, err
	}
	inv.PDF = pdf.String
	return inv, nil
}
