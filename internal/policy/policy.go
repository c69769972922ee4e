// Package policy decides whether a caller may act on a job.
// Every function here is pure: no I/O and no shared state.
package policy

import (
	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
)

// Identity is the caller reconstructed from a verified token on every request.
type Identity struct {
	UserID string
	Role   string
	// IsRestricted marks the read-only demo account, set once at authentication.
	IsRestricted bool
}

// IsAdmin reports whether the caller has the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Action is an operation on a single job
type Action int

// Actions
const (
	ActionRead Action = iota
	ActionWrite
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide
type Decision int

// Decisions
const (
	Allow Decision = iota
	Forbidden
	NotFound
)

// Decide evaluates the single job rules in order: existence, then ownership or admin override.
// Read, write and delete currently share the same rule.
func Decide(caller Identity, job *model.Job, _ Action) Decision {
	if job == nil {
		return NotFound
	}
	isOwner := caller.UserID != "" && caller.UserID == job.CreatedBy
	if isOwner || caller.IsAdmin() {
		return Allow
	}
	return Forbidden
}

// Authorize is Decide expressed as an error.
func Authorize(caller Identity, job *model.Job, action Action) error {
	switch Decide(caller, job, action) {
	case Allow:
		return nil
	case NotFound:
		return apperror.NotFound("No job found")
	default:
		return apperror.Forbidden("Not authorized to access this job")
	}
}

// ReadOnlyMessage is returned to the demo account on every mutation
const ReadOnlyMessage = "Demo user. Read only."

// CheckMutation blocks the restricted demo identity from changing anything,
// regardless of what it owns.
func CheckMutation(caller Identity) error {
	if caller.IsRestricted {
		return apperror.BadRequest(ReadOnlyMessage)
	}
	return nil
}
