package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email,
           COALESCE(phone, ''), COALESCE(role, ''), COALESCE(trade, ''),
           COALESCE(hourly_rate, 0), status, created_at, updated_at
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
			&emp.Role, &emp.Trade, &emp.HourlyRate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email,
           COALESCE(phone, ''), COALESCE(role, ''), COALESCE(trade, ''),
           COALESCE(hourly_rate, 0), status, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.Role, &emp.Trade, &emp.HourlyRate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, first_name, last_name, email, phone, role, trade, hourly_rate, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
  `, id, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Role, emp.Trade, emp.HourlyRate, statusOrActive(emp.Status))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, phone = $5,
        role = $6, trade = $7, hourly_rate = $8, status = $9, updated_at = now()
    WHERE id = $1
  `, emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Role, emp.Trade, emp.HourlyRate, statusOrActive(emp.Status))
	return err
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	return err
}

// GetCompanyProfile returns the singleton settings row, creating a default
// one on first read so the pay period endpoints always have a cadence.
func (s *Store) GetCompanyProfile(ctx context.Context) (CompanyProfile, error) {
	var profile CompanyProfile
	err := s.DB.QueryRow(ctx, `
    SELECT company_name, pay_period_type, COALESCE(anchor_date, ''), updated_at
    FROM company_profile
    WHERE id = 1
  `).Scan(&profile.CompanyName, &profile.PayPeriodType, &profile.AnchorDate, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		profile = CompanyProfile{PayPeriodType: "bi-weekly", UpdatedAt: time.Now().UTC()}
		_, insertErr := s.DB.Exec(ctx, `
      INSERT INTO company_profile (id, company_name, pay_period_type, anchor_date)
      VALUES (1, '', 'bi-weekly', '')
      ON CONFLICT (id) DO NOTHING
    `)
		return profile, insertErr
	}
	return profile, err
}

func (s *Store) UpdateCompanyProfile(ctx context.Context, profile CompanyProfile) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO company_profile (id, company_name, pay_period_type, anchor_date, updated_at)
    VALUES (1, $1, $2, $3, now())
    ON CONFLICT (id) DO UPDATE
    SET company_name = $1, pay_period_type = $2, anchor_date = $3, updated_at = now()
  `, profile.CompanyName, profile.PayPeriodType, profile.AnchorDate)
	return err
}

func statusOrActive(status string) string {
	if status == "" {
		return StatusActive
	}
	return status
}
