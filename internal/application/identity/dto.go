package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/identity"
)

// LoginRequest contains the credentials of a login.
// The email is normalised by the service, so it is not format-checked here.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=200"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse contains the issued token and the logged in user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// CreateUserRequest represents a request to create a user.
// Email format is checked by the domain after trimming and lower-casing.
type CreateUserRequest struct {
	Name     string     `json:"name" binding:"required,max=100"`
	Email    string     `json:"email" binding:"required,max=200"`
	Password string     `json:"password" binding:"required,min=6,max=72"`
	Role     string     `json:"role" binding:"required,oneof=ADMIN SUPERVISOR SELLER"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// UpdateUserRequest represents a request to update a user.
// The password is only changed when one is given.
type UpdateUserRequest struct {
	Name     string     `json:"name" binding:"required,max=100"`
	Email    string     `json:"email" binding:"required,max=200"`
	Password string     `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string     `json:"role" binding:"required,oneof=ADMIN SUPERVISOR SELLER"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// UserListFilter represents filter options for listing users
type UserListFilter struct {
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
}

// UserResponse represents a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		BranchID:  u.BranchID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// BranchRequest represents a request to create or update a branch
type BranchRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=255"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBranchResponse converts a domain branch to a response DTO
func ToBranchResponse(b *identity.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
