package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/masterdata"
	"github.com/retailops/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Branch, error) {
	var branch masterdata.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindAll finds all branches matching the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Branch, error) {
	var branches []masterdata.Branch
	query := applyCatalogFilter(
		r.db.WithContext(ctx).Model(&masterdata.Branch{}),
		filter,
		[]string{"code", "name"},
		map[string]bool{"code": true, "name": true, "created_at": true},
	)
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *masterdata.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// ExistsByCode checks if a branch code exists
func (r *GormBranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&masterdata.Branch{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormSalesRepRepository implements SalesRepRepository using GORM
type GormSalesRepRepository struct {
	db *gorm.DB
}

// NewGormSalesRepRepository creates a new GormSalesRepRepository
func NewGormSalesRepRepository(db *gorm.DB) *GormSalesRepRepository {
	return &GormSalesRepRepository{db: db}
}

// FindByID finds a sales representative by its ID
func (r *GormSalesRepRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.SalesRep, error) {
	var rep masterdata.SalesRep
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// FindAll finds all sales representatives matching the filter
func (r *GormSalesRepRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.SalesRep, error) {
	var reps []masterdata.SalesRep
	query := applyCatalogFilter(
		r.db.WithContext(ctx).Model(&masterdata.SalesRep{}),
		filter,
		[]string{"code", "name"},
		map[string]bool{"code": true, "name": true, "created_at": true},
	)
	if err := query.Find(&reps).Error; err != nil {
		return nil, err
	}
	return reps, nil
}

// FindByBranch finds all sales representatives assigned to a branch
func (r *GormSalesRepRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]masterdata.SalesRep, error) {
	var reps []masterdata.SalesRep
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&reps).Error; err != nil {
		return nil, err
	}
	return reps, nil
}

// Save creates or updates a sales representative
func (r *GormSalesRepRepository) Save(ctx context.Context, rep *masterdata.SalesRep) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

// ExistsByCode checks if a sales representative code exists
func (r *GormSalesRepRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&masterdata.SalesRep{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
