package adjustment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// AdjustmentService orchestrates the stock adjustment workflow: it resolves
// the actor scope, seeds lines from the stock ledger snapshot, runs the
// accumulating validation and drives the approval lifecycle. Authorization
// failures short-circuit; validation failures are reported all at once.
type AdjustmentService struct {
	adjustmentRepo adjustment.AdjustmentRepository
	ledgerGateway  adjustment.LedgerGateway
	eventPublisher shared.EventPublisher
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(
	adjustmentRepo adjustment.AdjustmentRepository,
	ledgerGateway adjustment.LedgerGateway,
	eventPublisher shared.EventPublisher,
) *AdjustmentService {
	return &AdjustmentService{
		adjustmentRepo: adjustmentRepo,
		ledgerGateway:  ledgerGateway,
		eventPublisher: eventPublisher,
	}
}

// ===================== Query Methods =====================

// GetByID retrieves an adjustment visible to the actor
func (s *AdjustmentService) GetByID(ctx context.Context, actor adjustment.Actor, id uuid.UUID) (*AdjustmentResponse, error) {
	scope := adjustment.ResolveScope(actor)

	adj, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanView(adj) {
		return nil, shared.ErrAccessDenied
	}

	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// List retrieves a paginated adjustment list. SalesRep scopes are pinned to
// their own documents regardless of the requested filter.
func (s *AdjustmentService) List(ctx context.Context, actor adjustment.Actor, filter ListAdjustmentsFilter) (*shared.Paginated[AdjustmentListResponse], error) {
	scope := adjustment.ResolveScope(actor)

	listFilter := adjustment.ListFilter{
		BranchID:   filter.BranchID,
		SalesRepID: scope.ListFilterSalesRep(filter.SalesRepID),
		Type:       adjustment.Type(filter.Type),
		Status:     adjustment.Status(filter.Status),
		DateFrom:   filter.DateFrom,
		DateTo:     filter.DateTo,
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	total, err := s.adjustmentRepo.Count(ctx, listFilter)
	if err != nil {
		return nil, err
	}

	adjs, err := s.adjustmentRepo.FindAll(ctx, listFilter, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToAdjustmentListResponses(adjs), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// LoadLedgerCandidates fetches the adjustable item snapshot for the actor's
// resolved ledger scope. No request is issued until every required scope
// dimension is present.
func (s *AdjustmentService) LoadLedgerCandidates(ctx context.Context, actor adjustment.Actor, req LedgerCandidatesRequest) ([]LedgerCandidateResponse, error) {
	scope := adjustment.ResolveScope(actor)

	query, ok := scope.LedgerScope(req.BranchID, req.SalesRepID)
	if !ok {
		return nil, shared.NewDomainError("INCOMPLETE_SCOPE", "Branch and sales representative must be selected before loading items")
	}

	rows, err := s.ledgerGateway.FetchLedger(ctx, query)
	if err != nil {
		return nil, shared.NewCollaboratorUnavailable("stock ledger", err)
	}

	return ToLedgerCandidateResponses(rows), nil
}

// ===================== Command Methods =====================

// Create creates a new adjustment in WAITING_FOR_APPROVAL. Line rates and
// totals are seeded from the ledger snapshot; any caller-supplied total is
// ignored. Every validation violation is reported in one response.
func (s *AdjustmentService) Create(ctx context.Context, actor adjustment.Actor, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	scope := adjustment.ResolveScope(actor)
	salesRepID := scope.EffectiveSalesRep(req.SalesRepID)

	adjustmentNo, err := s.adjustmentRepo.GenerateAdjustmentNo(ctx, time.Now())
	if err != nil {
		return nil, shared.NewCollaboratorUnavailable("document numbering", err)
	}

	adjustmentDate := time.Now()
	if req.AdjustmentDate != nil {
		adjustmentDate = *req.AdjustmentDate
	}

	adj, err := adjustment.NewAdjustment(adjustmentNo, req.BranchID, salesRepID, adjustment.Type(req.Type), adjustmentDate, req.Remarks)
	if err != nil {
		return nil, err
	}

	lineViolations, err := s.seedLines(ctx, scope, adj, req.Lines)
	if err != nil {
		return nil, err
	}

	result := adjustment.Validate(adj, scope)
	result.Violations = append(result.Violations, lineViolations...)
	if verr := result.AsError(); verr != nil {
		return nil, verr
	}

	if err := s.adjustmentRepo.Save(ctx, adj); err != nil {
		return nil, shared.NewCollaboratorUnavailable("adjustment store", err)
	}

	s.publishEvents(ctx, adj)

	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Update replaces the content of a pending adjustment. Authorization and
// lifecycle checks short-circuit; validation then accumulates.
func (s *AdjustmentService) Update(ctx context.Context, actor adjustment.Actor, id uuid.UUID, req UpdateAdjustmentRequest) (*AdjustmentResponse, error) {
	scope := adjustment.ResolveScope(actor)

	adj, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanMutate(adj) {
		return nil, shared.ErrAccessDenied
	}
	if !adj.CanModify() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Adjustment in %s status cannot be modified", adj.Status))
	}

	if err := adj.SetBranch(req.BranchID); err != nil {
		return nil, err
	}
	if err := adj.SetSalesRep(scope.EffectiveSalesRep(req.SalesRepID)); err != nil {
		return nil, err
	}
	var typeViolations []adjustment.Violation
	if reqType := adjustment.Type(req.Type); reqType.IsValid() {
		if err := adj.SetType(reqType); err != nil {
			return nil, err
		}
	} else {
		// The submitted type replaces the stored one; an unknown value is
		// a violation, not a cue to keep the old type.
		msg := "Adjustment type is required"
		if req.Type != "" {
			msg = fmt.Sprintf("Unknown adjustment type %q", req.Type)
		}
		typeViolations = append(typeViolations, adjustment.Violation{
			Code:    adjustment.CodeMissingType,
			Message: msg,
			Line:    -1,
		})
	}
	if req.AdjustmentDate != nil {
		if err := adj.SetAdjustmentDate(*req.AdjustmentDate); err != nil {
			return nil, err
		}
	}
	if err := adj.SetRemarks(req.Remarks); err != nil {
		return nil, err
	}

	if err := adj.ReplaceLines(nil); err != nil {
		return nil, err
	}
	lineViolations, err := s.seedLines(ctx, scope, adj, req.Lines)
	if err != nil {
		return nil, err
	}

	result := adjustment.Validate(adj, scope)
	result.Violations = append(result.Violations, typeViolations...)
	result.Violations = append(result.Violations, lineViolations...)
	if verr := result.AsError(); verr != nil {
		return nil, verr
	}

	if err := s.adjustmentRepo.SaveWithLock(ctx, adj); err != nil {
		return nil, err
	}

	adj.AddDomainEvent(adjustment.NewAdjustmentUpdatedEvent(adj))
	s.publishEvents(ctx, adj)

	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Approve transitions a pending adjustment to APPROVED. Only unscoped actors
// may approve.
func (s *AdjustmentService) Approve(ctx context.Context, actor adjustment.Actor, id uuid.UUID) (*AdjustmentResponse, error) {
	scope := adjustment.ResolveScope(actor)
	if !scope.CanApprove() {
		return nil, shared.ErrAccessDenied
	}

	adj, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := adj.Approve(scope.ActorID); err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.SaveWithLock(ctx, adj); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, adj)

	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Delete removes a pending adjustment
func (s *AdjustmentService) Delete(ctx context.Context, actor adjustment.Actor, id uuid.UUID) error {
	scope := adjustment.ResolveScope(actor)

	adj, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.CanMutate(adj) {
		return shared.ErrAccessDenied
	}
	if err := adj.EnsureDeletable(); err != nil {
		return err
	}

	if err := s.adjustmentRepo.Delete(ctx, adj.ID); err != nil {
		return err
	}

	adj.AddDomainEvent(adjustment.NewAdjustmentDeletedEvent(adj))
	s.publishEvents(ctx, adj)

	return nil
}

// ===================== Helpers =====================

// seedLines builds adjustment lines from the ledger snapshot for the current
// scope. Seeding problems are collected as violations so the caller sees them
// together with the document-level ones; only a failing ledger call aborts.
func (s *AdjustmentService) seedLines(ctx context.Context, scope adjustment.ActorScope, adj *adjustment.Adjustment, reqLines []LineRequest) ([]adjustment.Violation, error) {
	if len(reqLines) == 0 {
		return nil, nil
	}

	chosenRep := adj.SalesRepID
	query, ok := scope.LedgerScope(adj.BranchID, &chosenRep)
	if !ok {
		// document-level violations cover the missing dimensions
		return nil, nil
	}

	rows, err := s.ledgerGateway.FetchLedger(ctx, query)
	if err != nil {
		return nil, shared.NewCollaboratorUnavailable("stock ledger", err)
	}

	rowsByItem := make(map[uuid.UUID]adjustment.StockLedgerRow, len(rows))
	for _, row := range rows {
		rowsByItem[row.ItemID] = row
	}

	var violations []adjustment.Violation
	for idx, reqLine := range reqLines {
		row, found := rowsByItem[reqLine.ItemID]
		if !found {
			violations = append(violations, adjustment.Violation{
				Code:    adjustment.CodeInvalidLine,
				Message: fmt.Sprintf("Line %d references an item outside the selected scope", idx+1),
				Line:    idx,
			})
			continue
		}

		line, err := adjustment.NewLineFromLedger(adj.ID, row, adj.Type, reqLine.PrimaryQty, reqLine.BaseQty)
		if err != nil {
			violations = append(violations, adjustment.Violation{
				Code:    adjustment.CodeInvalidLine,
				Message: fmt.Sprintf("Line %d: %s", idx+1, err.Error()),
				Line:    idx,
			})
			continue
		}

		if err := adj.AddLine(*line); err != nil {
			violations = append(violations, adjustment.Violation{
				Code:    adjustment.CodeInvalidLine,
				Message: fmt.Sprintf("Line %d: %s", idx+1, err.Error()),
				Line:    idx,
			})
		}
	}

	return violations, nil
}

func (s *AdjustmentService) publishEvents(ctx context.Context, adj *adjustment.Adjustment) {
	if s.eventPublisher == nil {
		return
	}

	for _, event := range adj.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	adj.ClearDomainEvents()
}
