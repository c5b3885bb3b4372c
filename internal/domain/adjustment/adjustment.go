package adjustment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Adjustment is the aggregate root for a branch-level stock adjustment. It is
// created directly in WAITING_FOR_APPROVAL, may be edited or deleted only in
// that status, and becomes immutable once approved or cancelled. TotalValue
// is always recomputed from the lines; a caller-supplied total is advisory
// only and never stored.
type Adjustment struct {
	shared.BaseAggregateRoot
	AdjustmentNo   string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	BranchID       uuid.UUID `gorm:"type:uuid;index"`
	SalesRepID     uuid.UUID `gorm:"type:uuid;index"`
	Type           Type      `gorm:"type:varchar(30)"`
	AdjustmentDate time.Time
	Remarks        string `gorm:"type:varchar(500)"`
	Lines          []Line `gorm:"foreignKey:AdjustmentID"`
	TotalValue     decimal.Decimal
	Status         Status `gorm:"type:varchar(30);not null;index"`
	ApprovedAt     *time.Time
	ApprovedByID   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Adjustment) TableName() string {
	return "adjustments"
}

// NewAdjustment creates a new adjustment draft in WAITING_FOR_APPROVAL.
// Structural completeness (branch, type, sales rep, lines, rates) is checked
// by the Validator before submission, not here, so every violation can be
// reported at once.
func NewAdjustment(adjustmentNo string, branchID, salesRepID uuid.UUID, adjType Type, adjustmentDate time.Time, remarks string) (*Adjustment, error) {
	if adjustmentNo == "" {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_NO", "Adjustment number cannot be empty")
	}
	if len(adjustmentNo) > 50 {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_NO", "Adjustment number cannot exceed 50 characters")
	}
	if adjustmentDate.IsZero() {
		adjustmentDate = time.Now()
	}

	adj := &Adjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AdjustmentNo:      adjustmentNo,
		BranchID:          branchID,
		SalesRepID:        salesRepID,
		Type:              adjType,
		AdjustmentDate:    adjustmentDate,
		Remarks:           remarks,
		Lines:             make([]Line, 0),
		TotalValue:        decimal.Zero,
		Status:            StatusWaitingForApproval,
	}

	adj.AddDomainEvent(NewAdjustmentCreatedEvent(adj))

	return adj, nil
}

// CanModify returns true while the adjustment is still pending approval
func (a *Adjustment) CanModify() bool {
	return a.Status == StatusWaitingForApproval
}

// ensureEditable guards every mutation against terminal statuses
func (a *Adjustment) ensureEditable() error {
	if !a.CanModify() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Adjustment in %s status cannot be modified", a.Status))
	}
	return nil
}

// AddLine appends a line and recomputes totals
func (a *Adjustment) AddLine(line Line) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	for _, existing := range a.Lines {
		if existing.ItemID == line.ItemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in adjustment, update its quantities instead")
		}
	}

	line.AdjustmentID = a.ID
	a.Lines = append(a.Lines, line)
	a.Recompute()
	a.UpdatedAt = time.Now()

	return nil
}

// ReplaceLines swaps the full line set, as an edit submission does, and
// recomputes totals
func (a *Adjustment) ReplaceLines(lines []Line) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}

	for i := range lines {
		lines[i].AdjustmentID = a.ID
	}
	a.Lines = lines
	a.Recompute()
	a.UpdatedAt = time.Now()

	return nil
}

// RemoveLine removes the line for an item and recomputes totals
func (a *Adjustment) RemoveLine(itemID uuid.UUID) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}

	for idx, line := range a.Lines {
		if line.ItemID == itemID {
			a.Lines = append(a.Lines[:idx], a.Lines[idx+1:]...)
			a.Recompute()
			a.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in adjustment")
}

// UpdateLineQuantities updates one line's quantities and recomputes totals
func (a *Adjustment) UpdateLineQuantities(itemID uuid.UUID, primaryQty, baseQty decimal.Decimal) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}

	for idx := range a.Lines {
		if a.Lines[idx].ItemID == itemID {
			if err := a.Lines[idx].SetQuantities(primaryQty, baseQty); err != nil {
				return err
			}
			a.Recompute()
			a.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in adjustment")
}

// SetType changes the adjustment type. Switching between the sales and goods
// families clears the rate fields that no longer apply on every line, then
// recomputes all totals.
func (a *Adjustment) SetType(adjType Type) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	if !adjType.IsValid() {
		return shared.NewDomainError("MISSING_TYPE", fmt.Sprintf("Unknown adjustment type %q", adjType))
	}

	familyChanged := a.Type.IsSalesType() != adjType.IsSalesType() || a.Type.IsGoodsType() != adjType.IsGoodsType()
	a.Type = adjType
	if familyChanged {
		for idx := range a.Lines {
			a.Lines[idx].applyTypeFamily(adjType)
		}
	}
	a.Recompute()
	a.UpdatedAt = time.Now()

	return nil
}

// SetBranch sets the branch
func (a *Adjustment) SetBranch(branchID uuid.UUID) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	a.BranchID = branchID
	a.UpdatedAt = time.Now()
	return nil
}

// SetSalesRep sets the sales representative the adjustment is scoped to.
// Scope enforcement (who may choose which rep) happens in the orchestrator.
func (a *Adjustment) SetSalesRep(salesRepID uuid.UUID) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	a.SalesRepID = salesRepID
	a.UpdatedAt = time.Now()
	return nil
}

// SetRemarks sets the remarks
func (a *Adjustment) SetRemarks(remarks string) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	a.Remarks = remarks
	a.UpdatedAt = time.Now()
	return nil
}

// SetAdjustmentDate sets the document date
func (a *Adjustment) SetAdjustmentDate(date time.Time) error {
	if err := a.ensureEditable(); err != nil {
		return err
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Adjustment date cannot be empty")
	}
	a.AdjustmentDate = date
	a.UpdatedAt = time.Now()
	return nil
}

// Recompute refreshes every line total and the document total from current
// type and quantities. It runs synchronously after every mutation; stored
// totals are never trusted independently of their inputs.
func (a *Adjustment) Recompute() {
	total := decimal.Zero
	for idx := range a.Lines {
		a.Lines[idx].Recompute(a.Type)
		total = total.Add(a.Lines[idx].LineTotal)
	}
	a.TotalValue = total
}

// Approve transitions the adjustment to APPROVED. Approver authorization is
// enforced by the caller through the actor scope; the aggregate only guards
// the lifecycle.
func (a *Adjustment) Approve(approverID uuid.UUID) error {
	if !a.Status.CanTransitionTo(StatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot approve adjustment in %s status", a.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	a.Status = StatusApproved
	a.ApprovedAt = &now
	a.ApprovedByID = &approverID
	a.UpdatedAt = now

	a.AddDomainEvent(NewAdjustmentApprovedEvent(a, approverID))

	return nil
}

// EnsureDeletable rejects deletion of adjustments that left the pending state
func (a *Adjustment) EnsureDeletable() error {
	if a.Status != StatusWaitingForApproval {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot delete adjustment in %s status", a.Status))
	}
	return nil
}

// IsApproved returns true if the adjustment has been approved
func (a *Adjustment) IsApproved() bool {
	return a.Status == StatusApproved
}

// IsCancelled returns true if the adjustment has been cancelled
func (a *Adjustment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// LineCount returns the number of lines
func (a *Adjustment) LineCount() int {
	return len(a.Lines)
}

// GetLine returns the line for an item, if present
func (a *Adjustment) GetLine(itemID uuid.UUID) *Line {
	for idx := range a.Lines {
		if a.Lines[idx].ItemID == itemID {
			return &a.Lines[idx]
		}
	}
	return nil
}
