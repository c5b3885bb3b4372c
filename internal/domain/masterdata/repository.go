package masterdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// BranchRepository defines persistence operations for branches
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)
	Save(ctx context.Context, branch *Branch) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// SalesRepRepository defines persistence operations for sales representatives
type SalesRepRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesRep, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesRep, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]SalesRep, error)
	Save(ctx context.Context, rep *SalesRep) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
