package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// ItemRepository defines persistence operations for catalog items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByItemCode(ctx context.Context, itemCode string) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByItemCode(ctx context.Context, itemCode string) (bool, error)
}

// BrandRepository defines persistence operations for brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ProductGroupRepository defines persistence operations for product groups
type ProductGroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductGroup, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductGroup, error)
	Save(ctx context.Context, group *ProductGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
