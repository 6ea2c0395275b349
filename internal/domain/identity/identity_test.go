package identity

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	branchID := uuid.New()
	u, err := NewUser(" Ana ", " Ana@Shop.COM ", "secret1", RoleSeller, &branchID)
	require.NoError(t, err)

	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@shop.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.VerifyPassword("secret1"))
	assert.False(t, u.VerifyPassword("secret2"))

	actor := u.Actor()
	assert.Equal(t, u.ID, actor.UserID)
	assert.Equal(t, RoleSeller, actor.Role)
	assert.Equal(t, &branchID, actor.BranchID)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name                  string
		userName, email, pass string
		role                  Role
	}{
		{"blank name", "", "a@b.co", "secret1", RoleAdmin},
		{"bad email", "Ana", "not-an-email", "secret1", RoleAdmin},
		{"short password", "Ana", "a@b.co", "12345", RoleAdmin},
		{"long password", "Ana", "a@b.co", strings.Repeat("p", 73), RoleAdmin},
		{"unknown role", "Ana", "a@b.co", "secret1", Role("OWNER")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, tt.pass, tt.role, nil)
			assert.True(t, errors.Is(err, shared.ErrValidation), "got %v", err)
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	u, err := NewUser("Ana", "ana@shop.com", "secret1", RoleSeller, nil)
	require.NoError(t, err)

	nilBranch := uuid.Nil
	require.NoError(t, u.UpdateProfile("Ana B", "ANA.B@shop.com", RoleSupervisor, &nilBranch))
	assert.Equal(t, "ana.b@shop.com", u.Email)
	assert.Equal(t, RoleSupervisor, u.Role)
	assert.Nil(t, u.BranchID)
	assert.Equal(t, 2, u.Version)

	branchID := uuid.New()
	u.AssignBranch(branchID)
	assert.Equal(t, branchID, *u.BranchID)
}

func TestActorContext_ResolveBranch(t *testing.T) {
	own, other := uuid.New(), uuid.New()

	seller := ActorContext{UserID: uuid.New(), Role: RoleSeller, BranchID: &own}
	got, err := seller.ResolveBranch(nil)
	require.NoError(t, err)
	assert.Equal(t, own, got)

	got, err = seller.ResolveBranch(&own)
	require.NoError(t, err)
	assert.Equal(t, own, got)

	_, err = seller.ResolveBranch(&other)
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	admin := ActorContext{UserID: uuid.New(), Role: RoleAdmin}
	got, err = admin.ResolveBranch(&other)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	_, err = admin.ResolveBranch(nil)
	assert.True(t, errors.Is(err, shared.ErrNoBranchAssigned))

	_, err = ActorContext{}.ResolveBranch(&own)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestActorContext_RequireAdmin(t *testing.T) {
	assert.NoError(t, ActorContext{UserID: uuid.New(), Role: RoleAdmin}.RequireAdmin())
	assert.True(t, errors.Is(ActorContext{UserID: uuid.New(), Role: RoleSeller}.RequireAdmin(), shared.ErrForbidden))
	assert.True(t, errors.Is(ActorContext{Role: RoleAdmin}.RequireAdmin(), shared.ErrUnauthorized))
}

func TestNewBranch(t *testing.T) {
	b, err := NewBranch("  Centro ", " Main St 1 ")
	require.NoError(t, err)
	assert.Equal(t, "Centro", b.Name)
	assert.Equal(t, "Main St 1", b.Address)

	_, err = NewBranch(" ", "")
	assert.True(t, errors.Is(err, shared.ErrValidation))
	assert.True(t, errors.Is(ErrBranchNameTaken, shared.ErrConflict))
}
