// Package cache provides the feed result cache with per-entry time-to-live.
// Keys are derived from feed URLs with Key, values are domain.FeedResult.
package cache

import (
	"context"
	"crypto/md5" //nolint:gosec // used for key derivation, not security
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedreader/pkg/domain"
)

const keyPrefix = "rss_feed_"

// backend names
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Cache stores feed results for a limited time.
// Get reports false for missing and expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (domain.FeedResult, bool)
	Set(ctx context.Context, key string, value domain.FeedResult, ttl time.Duration) error
}

// Store is a Cache which can be maintained by the owner
type Store interface {
	Cache
	Purge(ctx context.Context) error
	Cleanup(ctx context.Context) (int, error)
	Close() error
}

// Config defines cache backend
type Config struct {
	Backend string
	DSN     string // sqlite only
}

// Key returns cache key for the feed url
func Key(url string) string {
	sum := md5.Sum([]byte(url)) //nolint:gosec // not a security hash
	return keyPrefix + hex.EncodeToString(sum[:])
}

// New makes cache store for the configured backend
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Run removes expired entries every interval until ctx is done
func Run(ctx context.Context, s Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Cleanup(ctx)
			if err != nil {
				lgr.Printf("[WARN] failed to cleanup cache: %v", err)
				continue
			}
			if removed > 0 {
				lgr.Printf("[DEBUG] removed %d expired cache entries", removed)
			}
		}
	}
}
