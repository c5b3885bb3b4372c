package catalog

import (
	"time"

	"github.com/retailops/backoffice/internal/domain/shared"
)

// ProductGroup represents a product grouping used for catalog organisation
type ProductGroup struct {
	shared.BaseEntity
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductGroup) TableName() string {
	return "product_groups"
}

// NewProductGroup creates a new product group
func NewProductGroup(code, name string) (*ProductGroup, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_CODE", "Product group code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "Product group name cannot be empty")
	}

	return &ProductGroup{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}, nil
}

// Rename changes the group display name
func (g *ProductGroup) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_GROUP_NAME", "Product group name cannot be empty")
	}
	g.Name = name
	g.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the group inactive
func (g *ProductGroup) Deactivate() {
	g.Active = false
	g.UpdatedAt = time.Now()
}
