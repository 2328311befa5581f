// Package policy is the single authorization decision point for the API.
// Every user and book operation that is not public calls Authorize before
// touching persistence; no handler or service duplicates these rules.
package policy

import (
	"github.com/bookstack/bookstack-api/internal/model"
)

// Action identifies an operation a caller wants to perform.
type Action string

const (
	ActionListUsers  Action = "users:list"
	ActionReadUser   Action = "users:read"
	ActionUpdateUser Action = "users:update"
	ActionDeleteUser Action = "users:delete"

	ActionListBooks     Action = "books:list"
	ActionListUserBooks Action = "books:list_owned"
	ActionCreateBook    Action = "books:create"
	ActionReadBook      Action = "books:read"
	ActionUpdateBook    Action = "books:update"
	ActionDeleteBook    Action = "books:delete"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision.
var Allow = Decision{Allowed: true}

// Deny builds a negative decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether caller may perform action on the resource
// owned by ownerID. For user actions ownerID is the target user's own id.
//
// Admins may act on any user or book; the override applies uniformly to
// every read, update and delete rather than to an ad-hoc subset of routes.
// Listing all users or all books is admin-only. Non-admins may act only on
// themselves and their own books, and creating a book is always an
// owner-creates-for-self operation (admins may create for an existing
// target user; the existence check lives in the book service).
func Authorize(caller *model.User, action Action, ownerID int64) Decision {
	if caller == nil {
		return Deny("no authenticated caller")
	}

	switch action {
	case ActionListUsers, ActionListBooks:
		if caller.Role.IsAdmin() {
			return Allow
		}
		return Deny("admin role required")

	case ActionReadUser, ActionUpdateUser, ActionDeleteUser,
		ActionListUserBooks, ActionCreateBook,
		ActionReadBook, ActionUpdateBook, ActionDeleteBook:
		if caller.Role.IsAdmin() {
			return Allow
		}
		if caller.ID == ownerID {
			return Allow
		}
		return Deny("Unauthorized")

	default:
		return Deny("unknown action")
	}
}
