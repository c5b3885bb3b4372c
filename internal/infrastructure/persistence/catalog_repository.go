package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	"github.com/retailops/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID with its unit links
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("UomLinks").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByItemCode finds an item by its code
func (r *GormItemRepository) FindByItemCode(ctx context.Context, itemCode string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Preload("UomLinks").
		Where("item_code = ?", itemCode).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	var items []catalog.Item
	query := applyCatalogFilter(
		r.db.WithContext(ctx).Model(&catalog.Item{}),
		filter,
		[]string{"item_code", "name"},
		map[string]bool{"item_code": true, "name": true, "created_at": true, "updated_at": true},
	)

	if err := query.Preload("UomLinks").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Item{})
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(item_code) LIKE ? OR LOWER(name) LIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item with its unit links in a transaction
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("UomLinks").Save(item).Error; err != nil {
			return err
		}

		var keepIDs []uuid.UUID
		for _, link := range item.UomLinks {
			keepIDs = append(keepIDs, link.ID)
		}

		if len(keepIDs) > 0 {
			if err := tx.Where("item_id = ? AND id NOT IN ?", item.ID, keepIDs).
				Delete(&catalog.UnitLink{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("item_id = ?", item.ID).
				Delete(&catalog.UnitLink{}).Error; err != nil {
				return err
			}
		}

		for i := range item.UomLinks {
			item.UomLinks[i].ItemID = item.ID
			if err := tx.Save(&item.UomLinks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an item and its unit links
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&catalog.UnitLink{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByItemCode checks if an item code exists
func (r *GormItemRepository) ExistsByItemCode(ctx context.Context, itemCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Item{}).
		Where("item_code = ?", itemCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindAll finds all brands matching the filter
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	var brands []catalog.Brand
	query := applyCatalogFilter(
		r.db.WithContext(ctx).Model(&catalog.Brand{}),
		filter,
		[]string{"code", "name"},
		map[string]bool{"code": true, "name": true, "created_at": true},
	)
	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

// Delete deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a brand code exists
func (r *GormBrandRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Brand{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormProductGroupRepository implements ProductGroupRepository using GORM
type GormProductGroupRepository struct {
	db *gorm.DB
}

// NewGormProductGroupRepository creates a new GormProductGroupRepository
func NewGormProductGroupRepository(db *gorm.DB) *GormProductGroupRepository {
	return &GormProductGroupRepository{db: db}
}

// FindByID finds a product group by its ID
func (r *GormProductGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductGroup, error) {
	var group catalog.ProductGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindAll finds all product groups matching the filter
func (r *GormProductGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductGroup, error) {
	var groups []catalog.ProductGroup
	query := applyCatalogFilter(
		r.db.WithContext(ctx).Model(&catalog.ProductGroup{}),
		filter,
		[]string{"code", "name"},
		map[string]bool{"code": true, "name": true, "created_at": true},
	)
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Save creates or updates a product group
func (r *GormProductGroupRepository) Save(ctx context.Context, group *catalog.ProductGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete deletes a product group
func (r *GormProductGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductGroup{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a product group code exists
func (r *GormProductGroupRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductGroup{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyCatalogFilter applies search, pagination and ordering shared by the
// catalog and master data repositories
func applyCatalogFilter(query *gorm.DB, filter shared.Filter, searchFields []string, validOrderFields map[string]bool) *gorm.DB {
	if filter.Search != "" && len(searchFields) > 0 {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		clauses := make([]string, len(searchFields))
		args := make([]interface{}, len(searchFields))
		for i, field := range searchFields {
			clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ?", field)
			args[i] = searchPattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" && validOrderFields[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}
