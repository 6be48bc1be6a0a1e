package core

import (
	"context"

	"github.com/google/uuid"
)

func (s *Store) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(type, ''), COALESCE(identifier, ''),
           COALESCE(hourly_cost, 0), status, created_at
    FROM equipment
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Equipment
	for rows.Next() {
		var eq Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Type, &eq.Identifier, &eq.HourlyCost, &eq.Status, &eq.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

func (s *Store) CreateEquipment(ctx context.Context, eq Equipment) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO equipment (id, name, type, identifier, hourly_cost, status)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, eq.Name, eq.Type, eq.Identifier, eq.HourlyCost, statusOrActive(eq.Status))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEquipment(ctx context.Context, eq Equipment) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE equipment
    SET name = $2, type = $3, identifier = $4, hourly_cost = $5, status = $6
    WHERE id = $1
  `, eq.ID, eq.Name, eq.Type, eq.Identifier, eq.HourlyCost, statusOrActive(eq.Status))
	return err
}

func (s *Store) DeleteEquipment(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	return err
}

func (s *Store) ListVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(contact, ''), COALESCE(email, ''), COALESCE(phone, ''), status, created_at
    FROM vendors
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Contact, &v.Email, &v.Phone, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *Store) CreateVendor(ctx context.Context, v Vendor) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO vendors (id, name, contact, email, phone, status)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, v.Name, v.Contact, v.Email, v.Phone, statusOrActive(v.Status))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateVendor(ctx context.Context, v Vendor) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE vendors
    SET name = $2, contact = $3, email = $4, phone = $5, status = $6
    WHERE id = $1
  `, v.ID, v.Name, v.Contact, v.Email, v.Phone, statusOrActive(v.Status))
	return err
}

func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM vendors WHERE id = $1", id)
	return err
}

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(number, ''), COALESCE(client, ''), COALESCE(address, ''), status, created_at
    FROM projects
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Number, &p.Client, &p.Address, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(number, ''), COALESCE(client, ''), COALESCE(address, ''), status, created_at
    FROM projects
    WHERE id = $1
  `, id).Scan(&p.ID, &p.Name, &p.Number, &p.Client, &p.Address, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, p Project) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO projects (id, name, number, client, address, status)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, p.Name, p.Number, p.Client, p.Address, statusOrActive(p.Status))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateProject(ctx context.Context, p Project) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET name = $2, number = $3, client = $4, address = $5, status = $6
    WHERE id = $1
  `, p.ID, p.Name, p.Number, p.Client, p.Address, statusOrActive(p.Status))
	return err
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	return err
}
