package masterdata

import (
	"time"

	"github.com/retailops/backoffice/internal/domain/shared"
)

// Branch represents a sales branch. The adjustment engine only depends on its
// identity and display label; everything else is plain master data.
type Branch struct {
	shared.BaseEntity
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch
func NewBranch(code, name string) (*Branch, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}

	return &Branch{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}, nil
}

// Rename changes the branch display name
func (b *Branch) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	b.Name = name
	b.UpdatedAt = time.Now()
	return nil
}
