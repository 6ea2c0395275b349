package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/pos/backend/internal/domain/shared"
)

// Branch is a physical store. Stock is tracked per branch.
type Branch struct {
	shared.BaseEntity
	Name    string
	Address string
}

// NewBranch creates a branch
func NewBranch(name, address string) (*Branch, error) {
	b := &Branch{BaseEntity: shared.NewBaseEntity()}
	if err := b.Rename(name, address); err != nil {
		return nil, err
	}
	return b, nil
}

// Rename changes the branch name and address
func (b *Branch) Rename(name, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("branch name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewValidationError("branch name cannot exceed 100 characters")
	}
	b.Name = name
	b.Address = strings.TrimSpace(address)
	b.Touch()
	return nil
}

// ErrBranchNameTaken is returned when another branch already uses a name
var ErrBranchNameTaken = shared.NewConflictError("a branch with this name already exists")

// ErrBranchInUse is returned when users or sales still reference a branch
var ErrBranchInUse = shared.NewValidationError("branch has associated users or sales and cannot be deleted")

// ErrEmailTaken is returned when another user already uses an email
var ErrEmailTaken = shared.NewConflictError("a user with this email already exists")
