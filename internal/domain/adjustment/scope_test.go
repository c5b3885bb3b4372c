package adjustment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope(t *testing.T) {
	t.Run("administrator user is unscoped", func(t *testing.T) {
		actor := Actor{Kind: ActorKindUser, Role: RoleAdministrator, ID: uuid.New(), Name: "Alice"}

		scope := ResolveScope(actor)

		assert.Equal(t, ScopeUnscoped, scope.Kind)
		assert.Equal(t, actor.ID, scope.ActorID)
		assert.True(t, scope.IsUnscoped())
	})

	t.Run("data entry user is unscoped", func(t *testing.T) {
		actor := Actor{Kind: ActorKindUser, Role: RoleDataEntry, ID: uuid.New()}

		scope := ResolveScope(actor)

		assert.Equal(t, ScopeUnscoped, scope.Kind)
	})

	t.Run("sales rep actor is self scoped", func(t *testing.T) {
		actor := Actor{Kind: ActorKindSalesRep, Role: RoleSalesRep, ID: uuid.New(), Name: "Bob"}

		scope := ResolveScope(actor)

		assert.Equal(t, ScopeSalesRep, scope.Kind)
		assert.Equal(t, actor.ID, scope.ActorID)
		assert.False(t, scope.IsUnscoped())
	})

	t.Run("user with sales rep role is self scoped", func(t *testing.T) {
		actor := Actor{Kind: ActorKindUser, Role: RoleSalesRep, ID: uuid.New()}

		scope := ResolveScope(actor)

		assert.Equal(t, ScopeSalesRep, scope.Kind)
	})

	t.Run("explicit sales rep id wins over own id", func(t *testing.T) {
		explicit := uuid.New()
		actor := Actor{Kind: ActorKindSalesRep, ID: uuid.New(), SalesRepID: &explicit}

		scope := ResolveScope(actor)

		assert.Equal(t, explicit, scope.ActorID)
	})

	t.Run("falls back to nested identity when ids are absent", func(t *testing.T) {
		nested := ActorSalesRep{ID: uuid.New(), Name: "Carol"}
		actor := Actor{Kind: ActorKindSalesRep, SalesRep: &nested}

		scope := ResolveScope(actor)

		assert.Equal(t, nested.ID, scope.ActorID)
		assert.Equal(t, "Carol", scope.Label)
	})
}

func TestActorScope_CanView(t *testing.T) {
	repID := uuid.New()
	adj, err := NewAdjustment("ADJ-20260830-00009", uuid.New(), repID, TypeSale, time.Now(), "")
	require.NoError(t, err)

	t.Run("unscoped sees everything", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeUnscoped, ActorID: uuid.New()}

		assert.True(t, scope.CanView(adj))
		assert.True(t, scope.CanMutate(adj))
	})

	t.Run("owning sales rep sees own adjustment", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeSalesRep, ActorID: repID}

		assert.True(t, scope.CanView(adj))
		assert.True(t, scope.CanMutate(adj))
	})

	t.Run("other sales rep is denied", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeSalesRep, ActorID: uuid.New()}

		assert.False(t, scope.CanView(adj))
		assert.False(t, scope.CanMutate(adj))
	})
}

func TestActorScope_Approval(t *testing.T) {
	assert.True(t, ActorScope{Kind: ScopeUnscoped}.CanApprove())
	assert.False(t, ActorScope{Kind: ScopeSalesRep}.CanApprove())
}

func TestActorScope_EffectiveSalesRep(t *testing.T) {
	requested := uuid.New()
	own := uuid.New()

	t.Run("unscoped keeps requested rep", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeUnscoped, ActorID: uuid.New()}

		assert.Equal(t, requested, scope.EffectiveSalesRep(requested))
		assert.True(t, scope.CanChooseSalesRep())
	})

	t.Run("sales rep is forced to own identity", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeSalesRep, ActorID: own}

		assert.Equal(t, own, scope.EffectiveSalesRep(requested))
		assert.False(t, scope.CanChooseSalesRep())
	})
}

func TestActorScope_ListFilterSalesRep(t *testing.T) {
	requested := uuid.New()
	own := uuid.New()

	t.Run("unscoped passes filter through", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeUnscoped}

		assert.Equal(t, &requested, scope.ListFilterSalesRep(&requested))
		assert.Nil(t, scope.ListFilterSalesRep(nil))
	})

	t.Run("sales rep is pinned to own identity", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeSalesRep, ActorID: own}

		got := scope.ListFilterSalesRep(&requested)
		require.NotNil(t, got)
		assert.Equal(t, own, *got)

		got = scope.ListFilterSalesRep(nil)
		require.NotNil(t, got)
		assert.Equal(t, own, *got)
	})
}

func TestActorScope_LedgerScope(t *testing.T) {
	branchID := uuid.New()

	t.Run("sales rep scope needs only the branch", func(t *testing.T) {
		own := uuid.New()
		scope := ActorScope{Kind: ScopeSalesRep, ActorID: own}

		query, ok := scope.LedgerScope(branchID, nil)

		require.True(t, ok)
		assert.Equal(t, branchID, query.BranchID)
		require.NotNil(t, query.SalesRepID)
		assert.Equal(t, own, *query.SalesRepID)
	})

	t.Run("unscoped needs branch and chosen rep", func(t *testing.T) {
		chosen := uuid.New()
		scope := ActorScope{Kind: ScopeUnscoped}

		query, ok := scope.LedgerScope(branchID, &chosen)

		require.True(t, ok)
		assert.Equal(t, &chosen, query.SalesRepID)
	})

	t.Run("unscoped without chosen rep is incomplete", func(t *testing.T) {
		scope := ActorScope{Kind: ScopeUnscoped}

		_, ok := scope.LedgerScope(branchID, nil)

		assert.False(t, ok)
	})

	t.Run("missing branch is always incomplete", func(t *testing.T) {
		chosen := uuid.New()

		_, ok := ActorScope{Kind: ScopeUnscoped}.LedgerScope(uuid.Nil, &chosen)
		assert.False(t, ok)

		_, ok = ActorScope{Kind: ScopeSalesRep, ActorID: uuid.New()}.LedgerScope(uuid.Nil, nil)
		assert.False(t, ok)
	})
}
