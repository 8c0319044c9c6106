// Package revocation keeps an in-memory deny-list of signed-out session
// tokens. Tokens are still verified statelessly first; the deny-list only
// short-circuits tokens whose holder explicitly signed out.
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/mathewgeejo/cinemabase/shared/logger"
)

// Storage is the read side needed to populate the cache. Entries past their
// token expiry are irrelevant since the token would fail verification anyway.
type Storage interface {
	ActiveRevocations(ctx context.Context, now time.Time) (map[string]time.Time, error)
}

type Cache struct {
	storage        Storage
	cache          map[string]time.Time
	mu             sync.RWMutex
	lastUpdateTime time.Time
	now            func() time.Time
}

func NewCache(storage Storage) *Cache {
	return &Cache{
		storage: storage,
		cache:   make(map[string]time.Time),
		now:     time.Now,
	}
}

// Update reloads the deny-list from storage and atomically replaces the cache.
func (c *Cache) Update(ctx context.Context) error {
	entries, err := c.storage.ActiveRevocations(ctx, c.now())
	if err != nil {
		return err
	}

	newCache := make(map[string]time.Time, len(entries))
	for tokenId, expiresAt := range entries {
		newCache[tokenId] = expiresAt
	}

	c.mu.Lock()
	c.cache = newCache
	c.lastUpdateTime = c.now()
	c.mu.Unlock()

	logger.Log.Debug("revocation cache updated",
		"component", "revocation_cache",
		"entries", len(newCache))
	return nil
}

// Add records a revocation locally so it takes effect before the next refresh.
func (c *Cache) Add(tokenId string, expiresAt time.Time) {
	c.mu.Lock()
	c.cache[tokenId] = expiresAt
	c.mu.Unlock()
}

func (c *Cache) IsRevoked(tokenId string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	expiresAt, ok := c.cache[tokenId]
	return ok && c.now().Before(expiresAt)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// StartBackgroundUpdate refreshes the cache every interval until ctx is done.
func (c *Cache) StartBackgroundUpdate(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started revocation cache background updates",
		"component", "revocation_cache",
		"interval", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.Update(ctx); err != nil {
					logger.Log.Error("revocation cache update failed",
						"component", "revocation_cache",
						"error", err)
				}
			case <-ctx.Done():
				logger.Log.Info("revocation cache shutting down gracefully",
					"component", "revocation_cache")
				return
			}
		}
	}()
}
