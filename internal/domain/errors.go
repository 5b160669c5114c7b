// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a concurrent modification conflict (optimistic locking).
var ErrConflict = errors.New("conflict: resource was modified by another request")

// ErrValidation indicates the request failed input validation.
var ErrValidation = errors.New("validation failed")

// ErrPermissionDenied indicates the acting user lacks the required capability.
// The message deliberately does not reveal which rule denied access.
var ErrPermissionDenied = errors.New("permission denied")

// ErrStoreWrite indicates the persistence layer rejected a write. The caller
// may retry; no in-memory state was changed.
var ErrStoreWrite = errors.New("store write failed")
