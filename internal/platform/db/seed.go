package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/auth"
	"crewsite/internal/platform/config"
)

// Seed provisions the singleton company profile, one role grant per shipped
// template, and the initial admin account. Every step is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureCompanyProfile(ctx, pool, cfg.SeedCompanyName); err != nil {
		return err
	}
	if err := ensureRoleGrants(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedAdminEmail != "" {
		if err := ensureAdmin(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureCompanyProfile(ctx context.Context, pool *pgxpool.Pool, companyName string) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO company_profile (id, company_name, pay_period_type, anchor_date)
    VALUES (1, $1, 'bi-weekly', '')
    ON CONFLICT (id) DO NOTHING
  `, companyName)
	return err
}

func ensureRoleGrants(ctx context.Context, pool *pgxpool.Pool) error {
	for _, tpl := range access.Templates {
		var count int
		err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM role_grants WHERE lower(role) = lower($1)", tpl.Role).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		_, err = pool.Exec(ctx, `
      INSERT INTO role_grants (id, role, permissions, description)
      VALUES ($1, $2, $3, $4)
    `, uuid.NewString(), tpl.Role, tpl.Permissions, tpl.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.TrimSpace(email)

	var userID string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		hash, hashErr := auth.HashPassword(password)
		if hashErr != nil {
			return hashErr
		}
		err = pool.QueryRow(ctx, `
      INSERT INTO users (email, password_hash, status)
      VALUES ($1, $2, 'active')
      RETURNING id
    `, email, hash).Scan(&userID)
	}
	if err != nil {
		return err
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO employees (id, first_name, last_name, email, role, status)
    VALUES ($1, 'Site', 'Admin', $2, $3, 'active')
  `, uuid.NewString(), email, access.RoleAdmin)
	return err
}
