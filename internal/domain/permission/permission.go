// Package permission computes a user's capability set on a specific task.
//
// Resolution is pure and deterministic: a priority-ordered rule list is
// evaluated top to bottom and the first matching rule supplies the
// capability set. Capabilities are computed fresh per (user, task) pair and
// must never be cached across evaluations.
package permission

import (
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/user"
)

// Capabilities is the set of actions a user may perform on a task's
// comments and content. OwnContentOnly restricts CanEdit/CanDelete to
// comments authored by the acting user.
type Capabilities struct {
	CanAdd         bool `json:"can_add"`
	CanEdit        bool `json:"can_edit"`
	CanDelete      bool `json:"can_delete"`
	CanView        bool `json:"can_view"`
	CanModerate    bool `json:"can_moderate"`
	CanAttachFiles bool `json:"can_attach_files"`
	CanMention     bool `json:"can_mention"`
	OwnContentOnly bool `json:"own_content_only"`
}

// Full is the unrestricted capability set granted to admins and managers
// acting within their scope.
func Full() Capabilities {
	return Capabilities{
		CanAdd:         true,
		CanEdit:        true,
		CanDelete:      true,
		CanView:        true,
		CanModerate:    true,
		CanAttachFiles: true,
		CanMention:     true,
	}
}

// Restricted is the set granted to related non-privileged users: full
// participation, but edit/delete apply to their own comments only and
// moderation is withheld.
func Restricted() Capabilities {
	return Capabilities{
		CanAdd:         true,
		CanEdit:        true,
		CanDelete:      true,
		CanView:        true,
		CanAttachFiles: true,
		CanMention:     true,
		OwnContentOnly: true,
	}
}

// ViewOnly is the absolute fallback: read access is the safe default.
func ViewOnly() Capabilities {
	return Capabilities{CanView: true}
}

// Resolve computes the capability set for u acting on t. It never fails:
// a missing user or task yields the view-only fallback.
func Resolve(u *user.User, t *task.Task) Capabilities {
	if u == nil || t == nil {
		return ViewOnly()
	}
	for _, r := range rules {
		if r.applies(u, t) {
			return r.grant()
		}
	}
	return ViewOnly()
}

// CanEditComment reports whether caps permit editing a comment authored by
// authorID, honoring the own-content restriction.
func (c Capabilities) CanEditComment(actorID string, authorID identity.Ref) bool {
	if !c.CanEdit {
		return false
	}
	if c.OwnContentOnly {
		return authorID.EqualString(actorID)
	}
	return true
}

// CanDeleteComment reports whether caps permit deleting a comment authored
// by authorID. Moderators may delete any comment.
func (c Capabilities) CanDeleteComment(actorID string, authorID identity.Ref) bool {
	if c.CanModerate {
		return c.CanDelete
	}
	if !c.CanDelete {
		return false
	}
	if c.OwnContentOnly {
		return authorID.EqualString(actorID)
	}
	return true
}
