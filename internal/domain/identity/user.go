package identity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// PasswordCost is the bcrypt cost used for new password hashes
var PasswordCost = bcrypt.DefaultCost

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a staff member who can log in to the POS
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	BranchID     *uuid.UUID
}

// NewUser creates a user with a hashed password
func NewUser(name, email, password string, role Role, branchID *uuid.UUID) (*User, error) {
	u := &User{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := u.setProfile(name, email, role, branchID); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes name, email, role and branch
func (u *User) UpdateProfile(name, email string, role Role, branchID *uuid.UUID) error {
	if err := u.setProfile(name, email, role, branchID); err != nil {
		return err
	}
	u.IncrementVersion()
	return nil
}

func (u *User) setProfile(name, email string, role Role, branchID *uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewValidationError("name cannot exceed 100 characters")
	}
	email = NormalizeEmail(email)
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.NewValidationError("invalid email")
	}
	if !role.IsValid() {
		return shared.NewValidationError("invalid role %q", string(role))
	}
	if branchID != nil && *branchID == uuid.Nil {
		branchID = nil
	}

	u.Name = name
	u.Email = email
	u.Role = role
	u.BranchID = branchID
	return nil
}

// AssignBranch sets the user's branch
func (u *User) AssignBranch(branchID uuid.UUID) {
	u.BranchID = &branchID
	u.Touch()
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewValidationError("password must be at least %d characters", MinPasswordLength)
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return shared.NewValidationError("password cannot exceed 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Actor returns the ActorContext of this user
func (u *User) Actor() ActorContext {
	return ActorContext{UserID: u.ID, Role: u.Role, BranchID: u.BranchID}
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
