package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an adjustment by its ID with its lines
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*adjustment.Adjustment, error) {
	var adj adjustment.Adjustment
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&adj, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adj, nil
}

// FindByAdjustmentNo finds an adjustment by its document number
func (r *GormAdjustmentRepository) FindByAdjustmentNo(ctx context.Context, adjustmentNo string) (*adjustment.Adjustment, error) {
	var adj adjustment.Adjustment
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("adjustment_no = ?", adjustmentNo).
		First(&adj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adj, nil
}

// FindAll finds adjustments matching the list filter, with pagination
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, listFilter adjustment.ListFilter, filter shared.Filter) ([]adjustment.Adjustment, error) {
	var adjustments []adjustment.Adjustment
	query := r.applyFilter(
		r.applyListFilter(r.db.WithContext(ctx).Model(&adjustment.Adjustment{}), listFilter),
		filter,
	)

	if err := query.Preload("Lines").Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Count counts adjustments matching the list filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, listFilter adjustment.ListFilter) (int64, error) {
	var count int64
	query := r.applyListFilter(r.db.WithContext(ctx).Model(&adjustment.Adjustment{}), listFilter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an adjustment with its lines in a transaction
func (r *GormAdjustmentRepository) Save(ctx context.Context, adj *adjustment.Adjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(adj).Error; err != nil {
			return err
		}
		return r.saveLines(tx, adj)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormAdjustmentRepository) SaveWithLock(ctx context.Context, adj *adjustment.Adjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&adjustment.Adjustment{}).
			Where("id = ?", adj.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != adj.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The adjustment has been modified by another user")
		}

		adj.Version++
		adj.UpdatedAt = time.Now()

		result := tx.Model(&adjustment.Adjustment{}).
			Where("id = ? AND version = ?", adj.ID, currentVersion).
			Updates(map[string]interface{}{
				"branch_id":       adj.BranchID,
				"sales_rep_id":    adj.SalesRepID,
				"type":            adj.Type,
				"adjustment_date": adj.AdjustmentDate,
				"remarks":         adj.Remarks,
				"total_value":     adj.TotalValue,
				"status":          adj.Status,
				"approved_at":     adj.ApprovedAt,
				"approved_by_id":  adj.ApprovedByID,
				"version":         adj.Version,
				"updated_at":      adj.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The adjustment has been modified by another user")
		}

		return r.saveLines(tx, adj)
	})
}

// saveLines replaces the persisted line set with the aggregate's current lines
func (r *GormAdjustmentRepository) saveLines(tx *gorm.DB, adj *adjustment.Adjustment) error {
	var keepIDs []uuid.UUID
	for _, line := range adj.Lines {
		keepIDs = append(keepIDs, line.ID)
	}

	if len(keepIDs) > 0 {
		if err := tx.Where("adjustment_id = ? AND id NOT IN ?", adj.ID, keepIDs).
			Delete(&adjustment.Line{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("adjustment_id = ?", adj.ID).
			Delete(&adjustment.Line{}).Error; err != nil {
			return err
		}
	}

	for i := range adj.Lines {
		adj.Lines[i].AdjustmentID = adj.ID
		if err := tx.Save(&adj.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an adjustment and its lines
func (r *GormAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("adjustment_id = ?", id).Delete(&adjustment.Line{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&adjustment.Adjustment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByAdjustmentNo checks if a document number is taken
func (r *GormAdjustmentRepository) ExistsByAdjustmentNo(ctx context.Context, adjustmentNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&adjustment.Adjustment{}).
		Where("adjustment_no = ?", adjustmentNo).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateAdjustmentNo generates the next unique document number for a date.
// Format: ADJ-YYYYMMDD-NNNNN (e.g. ADJ-20260830-00001)
func (r *GormAdjustmentRepository) GenerateAdjustmentNo(ctx context.Context, date time.Time) (string, error) {
	prefix := fmt.Sprintf("ADJ-%s-", date.Format("20060102"))

	// Find the max sequence number for the date
	var maxNumber string
	err := r.db.WithContext(ctx).Model(&adjustment.Adjustment{}).
		Select("adjustment_no").
		Where("adjustment_no LIKE ?", prefix+"%").
		Order("adjustment_no DESC").
		Limit(1).
		Pluck("adjustment_no", &maxNumber).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) >= 3 {
			_, err := fmt.Sscanf(parts[len(parts)-1], "%05d", &seq)
			if err == nil {
				seq++
			}
		}
	}
	if seq == 0 {
		seq = 1
	}

	return fmt.Sprintf("%s%05d", prefix, seq), nil
}

// applyListFilter applies the domain list filter to the query
func (r *GormAdjustmentRepository) applyListFilter(query *gorm.DB, listFilter adjustment.ListFilter) *gorm.DB {
	if listFilter.BranchID != nil {
		query = query.Where("branch_id = ?", *listFilter.BranchID)
	}
	if listFilter.SalesRepID != nil {
		query = query.Where("sales_rep_id = ?", *listFilter.SalesRepID)
	}
	if listFilter.Type != "" {
		query = query.Where("type = ?", listFilter.Type)
	}
	if listFilter.Status != "" {
		query = query.Where("status = ?", listFilter.Status)
	}
	if listFilter.DateFrom != nil {
		query = query.Where("adjustment_date >= ?", *listFilter.DateFrom)
	}
	if listFilter.DateTo != nil {
		query = query.Where("adjustment_date <= ?", *listFilter.DateTo)
	}
	return query
}

// applyFilter applies common filter options to the query
func (r *GormAdjustmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(adjustment_no) LIKE ? OR LOWER(remarks) LIKE ?",
			searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		// Validate order by field to prevent SQL injection
		validFields := map[string]bool{
			"adjustment_no":   true,
			"adjustment_date": true,
			"status":          true,
			"type":            true,
			"total_value":     true,
			"created_at":      true,
			"updated_at":      true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}

	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}
