package masterdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// SalesRep represents a sales representative assigned to a branch
type SalesRep struct {
	shared.BaseEntity
	Code     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(100);not null"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SalesRep) TableName() string {
	return "sales_reps"
}

// NewSalesRep creates a new sales representative
func NewSalesRep(code, name string, branchID uuid.UUID) (*SalesRep, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_SALES_REP_CODE", "Sales rep code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SALES_REP_NAME", "Sales rep name cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	return &SalesRep{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		BranchID:   branchID,
		Active:     true,
	}, nil
}

// Rename changes the sales rep display name
func (s *SalesRep) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SALES_REP_NAME", "Sales rep name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}
