// Package policy decides whether an identity may perform an action.
//
// Administrative actions are a capability gate and deny with ErrForbidden.
// Commenting is a login funnel and denies anonymous callers with
// ErrAuthenticationRequired. Reads are open to everyone.
package policy

import (
	"quill/models"
	"quill/services"
)

type Action string

const (
	CreatePost    Action = "create_post"
	EditPost      Action = "edit_post"
	DeletePost    Action = "delete_post"
	CreateComment Action = "create_comment"
	ViewPost      Action = "view_post"
	ListPosts     Action = "list_posts"
	About         Action = "about"
	Contact       Action = "contact"
)

type Decision struct {
	Allowed bool
	// Reason is services.ErrForbidden or services.ErrAuthenticationRequired
	// when the action is denied.
	Reason error
}

var allow = Decision{Allowed: true}

func deny(reason error) Decision {
	return Decision{Reason: reason}
}

type Policy struct {
	AdminID uint
}

func New(adminID uint) Policy {
	return Policy{AdminID: adminID}
}

func (p Policy) IsAdmin(identity models.Identity) bool {
	return !identity.IsAnonymous() && identity.UserID() == p.AdminID
}

// Authorize is a pure function of the configured admin id, the action and
// the identity.
func (p Policy) Authorize(action Action, identity models.Identity) Decision {
	switch action {
	case CreatePost, EditPost, DeletePost:
		if p.IsAdmin(identity) {
			return allow
		}
		return deny(services.ErrForbidden)
	case CreateComment:
		if identity.IsAnonymous() {
			return deny(services.ErrAuthenticationRequired)
		}
		return allow
	case ViewPost, ListPosts, About, Contact:
		return allow
	}
	return deny(services.ErrForbidden)
}
