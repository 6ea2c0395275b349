package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BranchService handles branch administration
type BranchService struct {
	txScope    appinv.TransactionScope
	branchRepo identity.BranchRepository
	logger     *zap.Logger
}

// NewBranchService creates a new branch service
func NewBranchService(txScope appinv.TransactionScope, branchRepo identity.BranchRepository, logger *zap.Logger) *BranchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{
		txScope:    txScope,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// Create creates a branch. An administrator without a branch is assigned
// to the branch they create.
func (s *BranchService) Create(ctx context.Context, actor identity.ActorContext, req BranchRequest) (*BranchResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	branch, err := identity.NewBranch(req.Name, req.Address)
	if err != nil {
		return nil, err
	}

	assigned := false
	err = s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := ensureNameFree(ctx, repos.BranchRepo(), branch.Name, uuid.Nil); err != nil {
			return err
		}
		if err := repos.BranchRepo().Create(ctx, branch); err != nil {
			return err
		}

		// The token's branch may be stale, so the stored user decides
		creator, err := repos.UserRepo().FindByID(ctx, actor.UserID)
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("branch creator not found", zap.String("user_id", actor.UserID.String()))
			return nil
		}
		if err != nil {
			return err
		}
		if creator.BranchID != nil {
			return nil
		}
		creator.AssignBranch(branch.ID)
		assigned = true
		return repos.UserRepo().Update(ctx, creator)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.Bool("assigned_to_creator", assigned),
	)
	response := ToBranchResponse(branch)
	return &response, nil
}

// Update renames a branch
func (s *BranchService) Update(ctx context.Context, actor identity.ActorContext, id uuid.UUID, req BranchRequest) (*BranchResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := branch.Rename(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := ensureNameFree(ctx, s.branchRepo, branch.Name, branch.ID); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// Delete removes a branch that has neither users nor sales
func (s *BranchService) Delete(ctx context.Context, actor identity.ActorContext, id uuid.UUID) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if _, err := s.branchRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		users, err := repos.UserRepo().CountByBranch(ctx, id)
		if err != nil {
			return err
		}
		sales, err := repos.SaleRepo().CountByBranch(ctx, id)
		if err != nil {
			return err
		}
		if users > 0 || sales > 0 {
			return identity.ErrBranchInUse
		}
		// A reference committed after the counts still fails the delete
		return repos.BranchRepo().Delete(ctx, id)
	})
}

// GetByID returns one branch
func (s *BranchService) GetByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List returns every branch ordered by name
func (s *BranchService) List(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = ToBranchResponse(&branches[i])
	}
	return responses, nil
}

// ensureNameFree fails when a branch other than self already uses name.
// The unique index still catches concurrent creates.
func ensureNameFree(ctx context.Context, repo identity.BranchRepository, name string, self uuid.UUID) error {
	existing, err := repo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return identity.ErrBranchNameTaken
	}
	return nil
}
