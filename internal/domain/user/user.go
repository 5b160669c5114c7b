// Package user defines the user domain model for authentication and authorization.
package user

import (
	"errors"
	"net/mail"
	"time"
)

// Role represents the authorization level of a user. Exactly one effective
// role is resolved per request; legacy aliases collapse through NormalizeRole.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleOrgAdmin   Role = "org_admin"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

// ValidRoles is the set of all canonical user roles.
var ValidRoles = map[Role]bool{
	RoleSuperAdmin: true,
	RoleOrgAdmin:   true,
	RoleManager:    true,
	RoleEmployee:   true,
}

// roleAliases maps legacy role spellings from older clients onto the
// canonical set. Unknown or empty roles normalize to employee.
var roleAliases = map[string]Role{
	"tasksetu-admin": RoleSuperAdmin,
	"super-admin":    RoleSuperAdmin,
	"org_admin":      RoleOrgAdmin,
	"company-admin":  RoleOrgAdmin,
	"admin":          RoleOrgAdmin,
	"manager":        RoleManager,
	"employee":       RoleEmployee,
	"normal-user":    RoleEmployee,
	"user":           RoleEmployee,
}

// NormalizeRole resolves a raw role string to exactly one canonical Role.
func NormalizeRole(raw string) Role {
	if r, ok := roleAliases[raw]; ok {
		return r
	}
	return RoleEmployee
}

// User represents a registered user within an organization.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	TenantID     string    `json:"tenant_id"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the input for registering a new user.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest is the input for user authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"` //nolint:gosec // response field, not a hardcoded secret
	ExpiresIn   int    `json:"expires_in"`   // seconds until access token expires
	User        User   `json:"user"`
}

// TokenClaims contains the JWT payload fields.
type TokenClaims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	TenantID string `json:"tid"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}
