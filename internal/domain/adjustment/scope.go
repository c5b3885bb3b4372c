package adjustment

import (
	"github.com/google/uuid"
)

// Actor kinds as carried by the authentication layer
const (
	ActorKindUser     = "user"
	ActorKindSalesRep = "sales-rep"
)

// Roles recognised for scope classification
const (
	RoleAdministrator = "administrator"
	RoleDataEntry     = "data-entry"
	RoleSalesRep      = "sales-rep"
)

// ScopeKind classifies an actor's visibility boundary
type ScopeKind string

const (
	// ScopeUnscoped actors (administrators, data-entry operators) see and
	// act on every adjustment and choose ledger scoping explicitly.
	ScopeUnscoped ScopeKind = "unscoped"
	// ScopeSalesRep actors are pinned to their own identity.
	ScopeSalesRep ScopeKind = "salesRep"
)

// Actor is the authenticated identity a caller presents to the engine. It is
// passed explicitly into every orchestrator call; the engine never discovers
// the current actor from ambient state.
type Actor struct {
	Kind       string
	Role       string
	ID         uuid.UUID
	Name       string
	SalesRepID *uuid.UUID // explicitly supplied rep identity, if any
	SalesRep   *ActorSalesRep
}

// ActorSalesRep carries nested sales-rep identity fields some token issuers
// attach to the actor
type ActorSalesRep struct {
	ID   uuid.UUID
	Name string
}

// ActorScope is the derived visibility/authorization boundary for one call.
// It is never persisted.
type ActorScope struct {
	Kind    ScopeKind
	ActorID uuid.UUID
	Label   string
}

// ResolveScope classifies an actor. Generic users with an administrator or
// data-entry role are unscoped; everything else is treated as a self-scoped
// sales representative. A salesRep scope derives its identity from the first
// present of: the explicitly supplied id, the actor's own id, the nested
// sales-rep id.
func ResolveScope(actor Actor) ActorScope {
	if actor.Kind == ActorKindUser && (actor.Role == RoleAdministrator || actor.Role == RoleDataEntry) {
		return ActorScope{
			Kind:    ScopeUnscoped,
			ActorID: actor.ID,
			Label:   actor.Name,
		}
	}

	repID := actor.ID
	label := actor.Name
	switch {
	case actor.SalesRepID != nil && *actor.SalesRepID != uuid.Nil:
		repID = *actor.SalesRepID
	case actor.ID != uuid.Nil:
		repID = actor.ID
	case actor.SalesRep != nil:
		repID = actor.SalesRep.ID
		label = actor.SalesRep.Name
	}

	return ActorScope{
		Kind:    ScopeSalesRep,
		ActorID: repID,
		Label:   label,
	}
}

// IsUnscoped returns true for administrator/data-entry scopes
func (s ActorScope) IsUnscoped() bool {
	return s.Kind == ScopeUnscoped
}

// CanView reports whether the scope may see the adjustment. Unscoped actors
// are never denied by this rule.
func (s ActorScope) CanView(adj *Adjustment) bool {
	if s.IsUnscoped() {
		return true
	}
	return adj.SalesRepID == s.ActorID
}

// CanMutate reports whether the scope may edit or delete the adjustment.
// Visibility and mutation share the same ownership rule.
func (s ActorScope) CanMutate(adj *Adjustment) bool {
	return s.CanView(adj)
}

// CanApprove reports whether the scope may approve adjustments
func (s ActorScope) CanApprove() bool {
	return s.IsUnscoped()
}

// CanChooseSalesRep reports whether the scope may set an arbitrary sales rep
// on an adjustment
func (s ActorScope) CanChooseSalesRep() bool {
	return s.IsUnscoped()
}

// EffectiveSalesRep resolves the sales rep an adjustment payload ends up
// with: unscoped actors keep their choice, salesRep actors are forced to
// their own identity regardless of payload.
func (s ActorScope) EffectiveSalesRep(requested uuid.UUID) uuid.UUID {
	if s.IsUnscoped() {
		return requested
	}
	return s.ActorID
}

// ListFilterSalesRep resolves the sales-rep filter for listings: salesRep
// scopes are implicitly pinned to their own identity, unscoped scopes may
// filter by any chosen rep or none.
func (s ActorScope) ListFilterSalesRep(requested *uuid.UUID) *uuid.UUID {
	if s.IsUnscoped() {
		return requested
	}
	own := s.ActorID
	return &own
}

// LedgerScope resolves the ledger query for this scope. A salesRep scope
// requests by branch alone (the gateway scopes by the caller's identity); an
// unscoped scope must have chosen a sales rep. Until every required
// dimension is present, ok is false and no ledger request may be issued.
func (s ActorScope) LedgerScope(branchID uuid.UUID, chosenRep *uuid.UUID) (LedgerQuery, bool) {
	if branchID == uuid.Nil {
		return LedgerQuery{}, false
	}
	if !s.IsUnscoped() {
		own := s.ActorID
		return LedgerQuery{BranchID: branchID, SalesRepID: &own}, true
	}
	if chosenRep == nil || *chosenRep == uuid.Nil {
		return LedgerQuery{}, false
	}
	return LedgerQuery{BranchID: branchID, SalesRepID: chosenRep}, true
}
