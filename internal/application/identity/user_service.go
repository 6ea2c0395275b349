package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo   identity.UserRepository
	branchRepo identity.BranchRepository
	revoker    auth.TokenBlacklist
	tokenTTL   time.Duration
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, branchRepo identity.BranchRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// WithTokenRevocation revokes a user's outstanding tokens whenever the
// claims they carry go stale. ttl is the access token lifetime.
func (s *UserService) WithTokenRevocation(revoker auth.TokenBlacklist, ttl time.Duration) *UserService {
	s.revoker = revoker
	s.tokenTTL = ttl
	return s
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, actor identity.ActorContext, req CreateUserRequest) (*UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, identity.Role(req.Role), req.BranchID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)
	response := ToUserResponse(user)
	return &response, nil
}

// Update changes a user's profile and, when given, their password
func (s *UserService) Update(ctx context.Context, actor identity.ActorContext, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}

	before := user.Actor()
	if err := user.UpdateProfile(req.Name, req.Email, identity.Role(req.Role), req.BranchID); err != nil {
		return nil, err
	}
	passwordChanged := req.Password != ""
	if passwordChanged {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if passwordChanged || !sameClaims(before, user.Actor()) {
		s.revokeTokens(ctx, user.ID)
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user. Administrators cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor identity.ActorContext, id uuid.UUID) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if id == actor.UserID {
		return shared.NewValidationError("you cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeTokens(ctx, id)
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, actor identity.ActorContext, id uuid.UUID) (*UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List returns the users, optionally of one branch
func (s *UserService) List(ctx context.Context, actor identity.ActorContext, filter UserListFilter) ([]UserResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	branchID, err := shared.ParseOptionalID(filter.BranchID, "branch ID")
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, branchID)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

func (s *UserService) checkBranch(ctx context.Context, branchID *uuid.UUID) error {
	if branchID == nil || *branchID == uuid.Nil {
		return nil
	}
	_, err := s.branchRepo.FindByID(ctx, *branchID)
	return err
}

// revokeTokens is best effort: a failure leaves tokens valid until they expire
func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if s.revoker == nil {
		return
	}
	if err := s.revoker.RevokeUserTokens(ctx, userID, s.tokenTTL); err != nil {
		s.logger.Warn("failed to revoke user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func sameClaims(a, b identity.ActorContext) bool {
	if a.Role != b.Role {
		return false
	}
	if a.BranchID == nil || b.BranchID == nil {
		return a.BranchID == b.BranchID
	}
	return *a.BranchID == *b.BranchID
}
