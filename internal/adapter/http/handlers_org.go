package http

import (
	"net/http"

	"github.com/tasksetu/tasksetu/internal/domain/tenant"
)

// ListOrganizations handles GET /api/v1/orgs
func (h *Handlers) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.Tenants.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list organizations")
		return
	}
	if orgs == nil {
		orgs = []tenant.Organization{}
	}
	writeJSON(w, http.StatusOK, orgs)
}

// CreateOrganization handles POST /api/v1/orgs
func (h *Handlers) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.CreateRequest](w, r)
	if !ok {
		return
	}

	org, err := h.Tenants.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "failed to create organization")
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

// GetOrganization handles GET /api/v1/orgs/{id}
func (h *Handlers) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	org, err := h.Tenants.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// UpdateOrganization handles PUT /api/v1/orgs/{id}
func (h *Handlers) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[tenant.UpdateRequest](w, r)
	if !ok {
		return
	}

	org, err := h.Tenants.Update(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, org)
}
