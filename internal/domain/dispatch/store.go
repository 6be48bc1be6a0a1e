package dispatch

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

const assignmentColumns = `
    id, project_id,
    COALESCE(employee_id::text, ''), COALESCE(equipment_id::text, ''),
    start_date, end_date, COALESCE(shift, ''), COALESCE(notes, ''), created_at`

func (s *Store) List(ctx context.Context) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+assignmentColumns+" FROM dispatch_assignments ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// ListActiveOn returns the assignments covering a single day, for the
// dispatch board view.
func (s *Store) ListActiveOn(ctx context.Context, day time.Time) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+assignmentColumns+" FROM dispatch_assignments WHERE start_date <= $1 AND end_date >= $1 ORDER BY start_date", day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (s *Store) Get(ctx context.Context, id string) (*Assignment, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+assignmentColumns+" FROM dispatch_assignments WHERE id = $1", id)
	var a Assignment
	if err := row.Scan(&a.ID, &a.ProjectID, &a.EmployeeID, &a.EquipmentID,
		&a.StartDate, &a.EndDate, &a.Shift, &a.Notes, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a Assignment) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO dispatch_assignments (id, project_id, employee_id, equipment_id, start_date, end_date, shift, notes)
    VALUES ($1, $2, NULLIF($3, '')::uuid, NULLIF($4, '')::uuid, $5, $6, $7, $8)
  `, id, a.ProjectID, a.EmployeeID, a.EquipmentID, a.StartDate, a.EndDate, a.Shift, a.Notes)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, a Assignment) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE dispatch_assignments
    SET project_id = $2, employee_id = NULLIF($3, '')::uuid, equipment_id = NULLIF($4, '')::uuid,
        start_date = $5, end_date = $6, shift = $7, notes = $8
    WHERE id = $1
  `, a.ID, a.ProjectID, a.EmployeeID, a.EquipmentID, a.StartDate, a.EndDate, a.Shift, a.Notes)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM dispatch_assignments WHERE id = $1", id)
	return err
}

type assignmentRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAssignments(rows assignmentRows) ([]Assignment, error) {
	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.EmployeeID, &a.EquipmentID,
			&a.StartDate, &a.EndDate, &a.Shift, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
