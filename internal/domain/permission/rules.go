package permission

import (
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/user"
)

// rule pairs a predicate with the capability set it grants. Rules are
// evaluated in order; the first match wins.
type rule struct {
	name    string
	applies func(u *user.User, t *task.Task) bool
	grant   func() Capabilities
}

// rules is the priority-ordered authorization chain. Order is load-bearing:
// platform admin, org admin, manager scope, own/tagged involvement, tagged
// regardless of role, then the view-only fallback in Resolve.
var rules = []rule{
	{
		name: "super-admin",
		applies: func(u *user.User, _ *task.Task) bool {
			return user.NormalizeRole(string(u.Role)) == user.RoleSuperAdmin
		},
		grant: Full,
	},
	{
		name: "org-admin",
		applies: func(u *user.User, _ *task.Task) bool {
			// Org-wide visibility is pre-filtered by the query layer; within
			// a visible task the org admin is unrestricted.
			return user.NormalizeRole(string(u.Role)) == user.RoleOrgAdmin
		},
		grant: Full,
	},
	{
		name: "manager-scope",
		applies: func(u *user.User, t *task.Task) bool {
			if user.NormalizeRole(string(u.Role)) != user.RoleManager {
				return false
			}
			return ownTask(u, t) || subordinateTask(t) || tagged(u, t)
		},
		grant: Full,
	},
	{
		name: "member-involvement",
		applies: func(u *user.User, t *task.Task) bool {
			if user.NormalizeRole(string(u.Role)) != user.RoleEmployee {
				return false
			}
			return ownTask(u, t) || tagged(u, t)
		},
		grant: Restricted,
	},
	{
		name: "tagged-any-role",
		applies: func(u *user.User, t *task.Task) bool {
			return tagged(u, t)
		},
		grant: Restricted,
	},
}

// ownTask reports whether the task is assigned to or created by the user.
func ownTask(u *user.User, t *task.Task) bool {
	return t.AssigneeID.EqualString(u.ID) || t.CreatorID.EqualString(u.ID)
}

// subordinateTask reports whether the task belongs to an employee-role user,
// which places it inside a manager's span of control. The role must be
// explicitly recorded on the task; an absent role grants nothing.
func subordinateTask(t *task.Task) bool {
	if t.AssigneeRole != "" && user.NormalizeRole(string(t.AssigneeRole)) == user.RoleEmployee {
		return true
	}
	if t.CreatorRole != "" && user.NormalizeRole(string(t.CreatorRole)) == user.RoleEmployee {
		return true
	}
	return false
}

// tagged reports whether the user is a listed contributor or collaborator.
func tagged(u *user.User, t *task.Task) bool {
	return identity.Contains(t.Collaborators, u.ID) || identity.Contains(t.Contributors, u.ID)
}
