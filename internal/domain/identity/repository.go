package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail looks a user up by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, branchID *uuid.UUID) ([]User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
}

// BranchRepository persists branches
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	// FindByName returns the branch with exactly this name
	FindByName(ctx context.Context, name string) (*Branch, error)
	List(ctx context.Context) ([]Branch, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Create(ctx context.Context, branch *Branch) error
	Update(ctx context.Context, branch *Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
