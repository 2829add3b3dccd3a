// Package resourcepolicy decides who may act on a shared teaching resource.
//
// Authorization rules:
//   - Any signed-in user can upload resources and comment on them
//   - Only admins approve resources out of the moderation queue
//   - A resource can be deleted by an admin or by its own author
//
// The route middleware RequireSignedIn handles basic authentication; these
// checks layer entity-specific rules on top. Callers are expected to treat a
// denied approve or delete as a no-op rather than rendering an error.
package resourcepolicy

import (
	"strings"

	"github.com/ycyw/humanitieshub/internal/domain/models"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionUpload  Action = "upload"
	ActionComment Action = "comment"
	ActionApprove Action = "approve"
	ActionDelete  Action = "delete"
)

// CanPerform reports whether a user with the given role and display name may
// perform the action on a resource attributed to resourceAuthor. Author
// comparison is case-insensitive because attribution is stored by name.
func CanPerform(action Action, role, userName, resourceAuthor string) bool {
	role = strings.ToLower(strings.TrimSpace(role))

	switch action {
	case ActionUpload, ActionComment:
		return role == models.RoleAdmin || role == models.RoleStaff
	case ActionApprove:
		return role == models.RoleAdmin
	case ActionDelete:
		if role == models.RoleAdmin {
			return true
		}
		return role == models.RoleStaff && isAuthor(userName, resourceAuthor)
	default:
		return false
	}
}

// CanApprove reports whether the role may publish pending resources.
func CanApprove(role string) bool {
	return CanPerform(ActionApprove, role, "", "")
}

// CanDelete reports whether the user may delete a resource by the given author.
func CanDelete(role, userName, resourceAuthor string) bool {
	return CanPerform(ActionDelete, role, userName, resourceAuthor)
}

func isAuthor(userName, resourceAuthor string) bool {
	userName = strings.TrimSpace(userName)
	resourceAuthor = strings.TrimSpace(resourceAuthor)
	if userName == "" || resourceAuthor == "" {
		return false
	}
	return strings.EqualFold(userName, resourceAuthor)
}
