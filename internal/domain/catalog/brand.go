package catalog

import (
	"time"

	"github.com/retailops/backoffice/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseEntity
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(code, name string) (*Brand, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_CODE", "Brand code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot be empty")
	}

	return &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}, nil
}

// Rename changes the brand display name
func (b *Brand) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot be empty")
	}
	b.Name = name
	b.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the brand inactive
func (b *Brand) Deactivate() {
	b.Active = false
	b.UpdatedAt = time.Now()
}
