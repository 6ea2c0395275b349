package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBranchRepository implements identity.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "branch")
	}
	return model.ToDomain(), nil
}

// FindByName returns the branch with exactly this name
func (r *GormBranchRepository) FindByName(ctx context.Context, name string) (*identity.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		return nil, notFound(err, "branch")
	}
	return model.ToDomain(), nil
}

// List returns all branches ordered by name
func (r *GormBranchRepository) List(ctx context.Context) ([]identity.Branch, error) {
	var rows []models.BranchModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	branches := make([]identity.Branch, len(rows))
	for i := range rows {
		branches[i] = *rows[i].ToDomain()
	}
	return branches, nil
}

// ListIDs returns the IDs of every branch
func (r *GormBranchRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list branch IDs: %w", err)
	}
	return ids, nil
}

// Create inserts a branch
func (r *GormBranchRepository) Create(ctx context.Context, branch *identity.Branch) error {
	if err := r.db.WithContext(ctx).Create(models.BranchModelFromDomain(branch)).Error; err != nil {
		if isUniqueViolation(err) {
			return identity.ErrBranchNameTaken
		}
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// Update writes name and address
func (r *GormBranchRepository) Update(ctx context.Context, branch *identity.Branch) error {
	result := r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("id = ?", branch.ID).
		Updates(map[string]any{
			"name":       branch.Name,
			"address":    branch.Address,
			"updated_at": branch.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return identity.ErrBranchNameTaken
		}
		return fmt.Errorf("failed to update branch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("branch")
	}
	return nil
}

// Delete removes a branch; its stock counters go with it
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", id).
		Delete(&models.StockCounterModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete branch counters: %w", err)
	}
	result := r.db.WithContext(ctx).Delete(&models.BranchModel{}, "id = ?", id)
	if isForeignKeyViolation(result.Error) {
		return identity.ErrBranchInUse
	}
	if result.Error != nil {
		return fmt.Errorf("failed to delete branch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("branch")
	}
	return nil
}

// Ensure GormBranchRepository implements identity.BranchRepository
var _ identity.BranchRepository = (*GormBranchRepository)(nil)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return model.ToDomain(), nil
}

// FindByEmail looks a user up by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		First(&model, "email = ?", identity.NormalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return model.ToDomain(), nil
}

// List returns users ordered by name, optionally only those of one branch
func (r *GormUserRepository) List(ctx context.Context, branchID *uuid.UUID) ([]identity.User, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	var rows []models.UserModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Create inserts a user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error; err != nil {
		if isUniqueViolation(err) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update writes every mutable column of the user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"branch_id":     user.BranchID,
			"version":       user.Version,
			"updated_at":    user.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("user")
	}
	return nil
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("user")
	}
	return nil
}

// CountByBranch counts the users assigned to a branch
func (r *GormUserRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count branch users: %w", err)
	}
	return count, nil
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
