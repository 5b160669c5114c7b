// Package identity normalizes user identifier references.
//
// Upstream clients send user references in several shapes: a raw id string,
// an embedded user object carrying "_id" or "id", or null for unassigned.
// Ref is the single normalization boundary; all equality checks on user
// identifiers go through it so call sites never inspect the wire shape.
package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Ref is a normalized reference to a user identifier.
// The zero value means "unset" (e.g. an unassigned task).
type Ref struct {
	id string
}

// FromString returns a Ref for a raw identifier string.
func FromString(id string) Ref {
	return Ref{id: id}
}

// String returns the canonical identifier, or "" when unset.
func (r Ref) String() string { return r.id }

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.id == "" }

// Equal reports whether both references resolve to the same identifier.
// Two unset references are not considered equal: an unassigned task must
// never match an anonymous actor.
func (r Ref) Equal(other Ref) bool {
	return r.id != "" && r.id == other.id
}

// EqualString reports whether the reference resolves to the given raw id.
func (r Ref) EqualString(id string) bool {
	return r.id != "" && r.id == id
}

// UnmarshalJSON accepts a raw string id, an object with "_id" or "id",
// or null (unset).
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.id = s
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("identity ref: unsupported shape %s", data)
	}
	if obj.MongoID != "" {
		r.id = obj.MongoID
	} else {
		r.id = obj.ID
	}
	return nil
}

// MarshalJSON emits the canonical string form, or null when unset.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// Scan implements sql.Scanner so Refs read directly from text columns.
func (r *Ref) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		r.id = ""
	case string:
		r.id = v
	case []byte:
		r.id = string(v)
	default:
		return fmt.Errorf("identity ref: cannot scan %T", src)
	}
	return nil
}

// Value implements driver.Valuer; unset refs persist as NULL.
func (r Ref) Value() (driver.Value, error) {
	if r.id == "" {
		return nil, nil
	}
	return r.id, nil
}

// Contains reports whether refs includes the given actor id.
func Contains(refs []Ref, actorID string) bool {
	for _, ref := range refs {
		if ref.EqualString(actorID) {
			return true
		}
	}
	return false
}
