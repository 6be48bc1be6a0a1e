package invoice

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const invoiceColumns = `
    id, vendor_id, COALESCE(project_id::text, ''), number, date, due_date,
    lines, subtotal, tax, total, status, created_at, updated_at`

func (s *Store) List(ctx context.Context) ([]Invoice, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+invoiceColumns+" FROM invoices ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		var lines []byte
		if err := rows.Scan(&inv.ID, &inv.VendorID, &inv.ProjectID, &inv.Number, &inv.Date, &inv.DueDate,
			&lines, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		if len(lines) > 0 {
			if err := json.Unmarshal(lines, &inv.Lines); err != nil {
				return nil, err
			}
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	var lines []byte
	err := s.DB.QueryRow(ctx, "SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id).
		Scan(&inv.ID, &inv.VendorID, &inv.ProjectID, &inv.Number, &inv.Date, &inv.DueDate,
			&lines, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &inv.Lines); err != nil {
			return nil, err
		}
	}
	return &inv, nil
}

func (s *Store) Create(ctx context.Context, inv Invoice) (string, error) {
	id := uuid.NewString()
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return "", err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO invoices (id, vendor_id, project_id, number, date, due_date, lines, subtotal, tax, total, status)
    VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11)
  `, id, inv.VendorID, inv.ProjectID, inv.Number, inv.Date, inv.DueDate,
		lines, inv.Subtotal, inv.Tax, inv.Total, StatusDraft)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, inv Invoice) error {
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    UPDATE invoices
    SET vendor_id = $2, project_id = NULLIF($3, '')::uuid, number = $4, date = $5, due_date = $6,
        lines = $7, subtotal = $8, tax = $9, total = $10, updated_at = now()
    WHERE id = $1
  `, inv.ID, inv.VendorID, inv.ProjectID, inv.Number, inv.Date, inv.DueDate,
		lines, inv.Subtotal, inv.Tax, inv.Total)
	return err
}

func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1", id, status)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	return err
}
