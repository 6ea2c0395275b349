package identity

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleSeller     Role = "SELLER"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleSeller:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", shared.NewValidationError("invalid role %q", s)
	}
	return r, nil
}

// ActorContext is the authenticated caller of a use case. It is passed
// explicitly into every workflow instead of being looked up from a session.
type ActorContext struct {
	UserID   uuid.UUID
	Role     Role
	BranchID *uuid.UUID
}

// IsAdmin reports whether the actor has the ADMIN role
func (a ActorContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequireAuthenticated fails when the actor is missing
func (a ActorContext) RequireAuthenticated() error {
	if a.UserID == uuid.Nil || !a.Role.IsValid() {
		return shared.ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails unless the actor is an administrator
func (a ActorContext) RequireAdmin() error {
	if err := a.RequireAuthenticated(); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return shared.NewDomainError(shared.CodeForbidden, "administrator role required")
	}
	return nil
}

// ResolveBranch picks the branch an operation targets. An explicit branch is
// honoured for administrators and for the actor's own branch; otherwise the
// actor's assigned branch is used.
func (a ActorContext) ResolveBranch(requested *uuid.UUID) (uuid.UUID, error) {
	if err := a.RequireAuthenticated(); err != nil {
		return uuid.Nil, err
	}
	if requested != nil && *requested != uuid.Nil {
		if a.IsAdmin() || (a.BranchID != nil && *a.BranchID == *requested) {
			return *requested, nil
		}
		return uuid.Nil, shared.NewDomainError(shared.CodeForbidden, "cannot operate on another branch")
	}
	if a.BranchID == nil || *a.BranchID == uuid.Nil {
		return uuid.Nil, shared.ErrNoBranchAssigned
	}
	return *a.BranchID, nil
}
