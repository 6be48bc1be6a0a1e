package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListGrants(ctx context.Context) ([]RoleGrant, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, role, permissions, COALESCE(description, '')
    FROM role_grants
    ORDER BY role
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []RoleGrant
	for rows.Next() {
		var grant RoleGrant
		if err := rows.Scan(&grant.ID, &grant.Role, &grant.Permissions, &grant.Description); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (s *Store) GetGrant(ctx context.Context, id string) (*RoleGrant, error) {
	var grant RoleGrant
	err := s.DB.QueryRow(ctx, `
    SELECT id, role, permissions, COALESCE(description, '')
    FROM role_grants
    WHERE id = $1
  `, id).Scan(&grant.ID, &grant.Role, &grant.Permissions, &grant.Description)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (s *Store) CreateGrant(ctx context.Context, grant RoleGrant) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO role_grants (id, role, permissions, description)
    VALUES ($1, $2, $3, $4)
  `, id, grant.Role, grant.Permissions, grant.Description)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateGrant(ctx context.Context, grant RoleGrant) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE role_grants
    SET role = $2, permissions = $3, description = $4, updated_at = now()
    WHERE id = $1
  `, grant.ID, grant.Role, grant.Permissions, grant.Description)
	return err
}

func (s *Store) DeleteGrant(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM role_grants WHERE id = $1", id)
	return err
}

// ListEmployeeRecords loads the email/role projection of the employee
// collection used by permission resolution.
func (s *Store) ListEmployeeRecords(ctx context.Context) ([]EmployeeRecord, error) {
	rows, err := s.DB.Query(ctx, "SELECT email, COALESCE(role, '') FROM employees")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EmployeeRecord
	for rows.Next() {
		var record EmployeeRecord
		if err := rows.Scan(&record.Email, &record.Role); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
