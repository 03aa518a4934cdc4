package redis

import "context"

// IdempotencyStoreInterface defines the operations the idempotency middleware needs.
type IdempotencyStoreInterface interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, resp *CachedResponse) error
}

// Ensure concrete types implement interfaces.
var _ IdempotencyStoreInterface = (*IdempotencyStore)(nil)
