// Package cache defines the in-process cache port used for analytics reports.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL expiry. Analytics reports are pure
// functions of the stored run set, so any run mutation invalidates the whole
// cache via Clear; TTL is only a backstop.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close()
}
