// Package cache stores JSON-encoded values under string keys.
//
// The repositories cache their full-table listings here and drop the key on
// every write. Drivers: "none" (default), "memory", "redis".
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/offerdesk/config"
	"github.com/shashiranjanraj/offerdesk/pkg/metrics"
)

// Store is the cache contract shared by every driver.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	// Errors count as misses.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores value under key for ttl (0 means no expiry).
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Del removes keys; missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
	// Close releases driver resources.
	Close() error
}

// New builds the store named by driver.
func New(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "", "none":
		return Nop{}, nil
	case "memory":
		return NewMemory(), nil
	case "redis":
		r, err := Connect(ctx, config.RedisAddr(), config.RedisPassword())
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("cache: unsupported CACHE_DRIVER %q (supported: none, memory, redis)", driver)
	}
}

// Nop never stores anything; every Get is a miss.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) bool                 { return false }
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error                          { return nil }
func (Nop) Close() error                                                  { return nil }

func observe(driver string, hit bool) bool {
	if hit {
		metrics.CacheHits.WithLabelValues(driver).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
	}
	return hit
}
