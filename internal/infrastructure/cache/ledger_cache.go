package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailops/backoffice/internal/domain/adjustment"
)

const ledgerKeyPrefix = "ledger:snapshot:"

// CachedLedgerGateway is a read-through cache over a LedgerGateway. Ledger
// snapshots change slowly relative to how often the adjustment form loads
// them, so a short TTL keeps rates fresh enough while sparing the source.
// Cache failures are never surfaced; the gateway falls back to the source.
type CachedLedgerGateway struct {
	source adjustment.LedgerGateway
	client *redis.Client
	ttl    time.Duration
}

// NewCachedLedgerGateway wraps a gateway with a Redis read-through cache
func NewCachedLedgerGateway(source adjustment.LedgerGateway, client *redis.Client, ttl time.Duration) *CachedLedgerGateway {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedLedgerGateway{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

// FetchLedger returns the cached snapshot for the scope, falling back to the
// source gateway on a miss or any cache error
func (g *CachedLedgerGateway) FetchLedger(ctx context.Context, query adjustment.LedgerQuery) ([]adjustment.StockLedgerRow, error) {
	key := g.key(query)

	cached, err := g.client.Get(ctx, key).Result()
	if err == nil {
		var rows []adjustment.StockLedgerRow
		if unmarshalErr := json.Unmarshal([]byte(cached), &rows); unmarshalErr == nil {
			return rows, nil
		}
		// Corrupted entry, drop it and fall through to the source
		g.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return g.source.FetchLedger(ctx, query)
	}

	rows, err := g.source.FetchLedger(ctx, query)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(rows); marshalErr == nil {
		g.client.Set(ctx, key, payload, g.ttl)
	}

	return rows, nil
}

// Invalidate drops the cached snapshot for a scope, e.g. after an approval
// changes the underlying stock
func (g *CachedLedgerGateway) Invalidate(ctx context.Context, query adjustment.LedgerQuery) error {
	return g.client.Del(ctx, g.key(query)).Err()
}

func (g *CachedLedgerGateway) key(query adjustment.LedgerQuery) string {
	if query.SalesRepID != nil {
		return fmt.Sprintf("%s%s:%s", ledgerKeyPrefix, query.BranchID, query.SalesRepID)
	}
	return fmt.Sprintf("%s%s:branch", ledgerKeyPrefix, query.BranchID)
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
