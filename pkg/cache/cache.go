// Package cache provides the short-lived cache used by the dashboard stats
// endpoint.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services. A miss is reported as
// an empty value with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
