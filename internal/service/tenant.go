package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/tenant"
	"github.com/tasksetu/tasksetu/internal/port/database"
)

// TenantService manages organization lifecycle.
type TenantService struct {
	store database.Store
}

// NewTenantService creates a new TenantService.
func NewTenantService(store database.Store) *TenantService {
	return &TenantService{store: store}
}

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}[a-z0-9]$`)

// Create validates and creates a new organization.
func (s *TenantService) Create(ctx context.Context, req tenant.CreateRequest) (*tenant.Organization, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: organization name is required", domain.ErrValidation)
	}
	if !slugRegex.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: invalid slug %q: must be 3-64 lowercase alphanumeric characters or hyphens", domain.ErrValidation, req.Slug)
	}

	org := &tenant.Organization{
		ID:      generateID(),
		Name:    req.Name,
		Slug:    req.Slug,
		Enabled: true,
	}
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

// Get returns an organization by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Organization, error) {
	return s.store.GetOrganization(ctx, id)
}

// List returns all organizations.
func (s *TenantService) List(ctx context.Context) ([]tenant.Organization, error) {
	return s.store.ListOrganizations(ctx)
}

// Update modifies an existing organization.
func (s *TenantService) Update(ctx context.Context, id string, req tenant.UpdateRequest) (*tenant.Organization, error) {
	org, err := s.store.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Enabled != nil {
		org.Enabled = *req.Enabled
	}
	if req.Settings != nil {
		org.Settings = req.Settings
	}
	if err := s.store.UpdateOrganization(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// ValidateExists checks that the organization exists and is enabled.
func (s *TenantService) ValidateExists(ctx context.Context, id string) error {
	org, err := s.store.GetOrganization(ctx, id)
	if err != nil {
		return fmt.Errorf("organization %s: %w", id, err)
	}
	if !org.Enabled {
		return fmt.Errorf("organization %s is disabled", id)
	}
	return nil
}
