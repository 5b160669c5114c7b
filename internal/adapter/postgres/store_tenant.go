package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tasksetu/tasksetu/internal/domain/tenant"
)

func (s *Store) CreateOrganization(ctx context.Context, org *tenant.Organization) error {
	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO organizations (id, name, slug, enabled, settings)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		org.ID, org.Name, org.Slug, org.Enabled, settings)

	if err := row.Scan(&org.CreatedAt, &org.UpdatedAt); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*tenant.Organization, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, slug, enabled, settings, created_at, updated_at
		 FROM organizations WHERE id = $1`, id)

	org, err := scanOrganization(row)
	if err != nil {
		return nil, notFoundWrap(err, "get organization %s", id)
	}
	return &org, nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]tenant.Organization, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, slug, enabled, settings, created_at, updated_at
		 FROM organizations ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []tenant.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (s *Store) UpdateOrganization(ctx context.Context, org *tenant.Organization) error {
	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE organizations SET name = $2, enabled = $3, settings = $4, updated_at = now()
		 WHERE id = $1`,
		org.ID, org.Name, org.Enabled, settings)
	return execExpectOne(tag, err, "update organization %s", org.ID)
}

func scanOrganization(row scannable) (tenant.Organization, error) {
	var (
		org      tenant.Organization
		settings []byte
	)
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Enabled, &settings,
		&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return tenant.Organization{}, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &org.Settings); err != nil {
			return tenant.Organization{}, fmt.Errorf("unmarshal settings: %w", err)
		}
	}
	return org, nil
}
