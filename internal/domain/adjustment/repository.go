package adjustment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// ListFilter narrows an adjustment listing. Zero / nil fields are ignored.
type ListFilter struct {
	BranchID   *uuid.UUID
	SalesRepID *uuid.UUID
	Type       Type
	Status     Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AdjustmentRepository defines the interface for stock adjustment persistence
type AdjustmentRepository interface {
	// FindByID finds an adjustment by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Adjustment, error)

	// FindByAdjustmentNo finds an adjustment by its document number
	FindByAdjustmentNo(ctx context.Context, adjustmentNo string) (*Adjustment, error)

	// FindAll finds adjustments matching the list filter, with pagination
	FindAll(ctx context.Context, listFilter ListFilter, filter shared.Filter) ([]Adjustment, error)

	// Count counts adjustments matching the list filter
	Count(ctx context.Context, listFilter ListFilter) (int64, error)

	// Save creates or updates an adjustment and its lines
	Save(ctx context.Context, adj *Adjustment) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, adj *Adjustment) error

	// Delete removes an adjustment and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByAdjustmentNo reports whether a document number is taken
	ExistsByAdjustmentNo(ctx context.Context, adjustmentNo string) (bool, error)

	// GenerateAdjustmentNo generates the next document number for a date
	GenerateAdjustmentNo(ctx context.Context, date time.Time) (string, error)
}
