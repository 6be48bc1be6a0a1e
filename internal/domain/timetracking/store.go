package timetracking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListRange(ctx context.Context, start, end time.Time) ([]TimeEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(project_id::text, ''), date, hours,
           COALESCE(cost_code, ''), COALESCE(notes, ''), approved, created_at
    FROM time_entries
    WHERE date >= $1 AND date <= $2
    ORDER BY date, created_at
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]TimeEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(project_id::text, ''), date, hours,
           COALESCE(cost_code, ''), COALESCE(notes, ''), approved, created_at
    FROM time_entries
    WHERE employee_id = $1 AND date >= $2 AND date <= $3
    ORDER BY date, created_at
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) Get(ctx context.Context, id string) (*TimeEntry, error) {
	var entry TimeEntry
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(project_id::text, ''), date, hours,
           COALESCE(cost_code, ''), COALESCE(notes, ''), approved, created_at
    FROM time_entries
    WHERE id = $1
  `, id).Scan(&entry.ID, &entry.EmployeeID, &entry.ProjectID, &entry.Date, &entry.Hours,
		&entry.CostCode, &entry.Notes, &entry.Approved, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) Create(ctx context.Context, entry TimeEntry) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO time_entries (id, employee_id, project_id, date, hours, cost_code, notes, approved)
    VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, false)
  `, id, entry.EmployeeID, entry.ProjectID, entry.Date, entry.Hours, entry.CostCode, entry.Notes)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, entry TimeEntry) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE time_entries
    SET employee_id = $2, project_id = NULLIF($3, '')::uuid, date = $4,
        hours = $5, cost_code = $6, notes = $7
    WHERE id = $1
  `, entry.ID, entry.EmployeeID, entry.ProjectID, entry.Date, entry.Hours, entry.CostCode, entry.Notes)
	return err
}

func (s *Store) SetApproved(ctx context.Context, id string, approved bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE time_entries SET approved = $2 WHERE id = $1", id, approved)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM time_entries WHERE id = $1", id)
	return err
}

type entryRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows entryRows) ([]TimeEntry, error) {
	var entries []TimeEntry
	for rows.Next() {
		var entry TimeEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.ProjectID, &entry.Date, &entry.Hours,
			&entry.CostCode, &entry.Notes, &entry.Approved, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
