package memory

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	password  string
	expiresAt time.Time
}

// PasswordCache keeps decrypted event passwords for a bounded time.
type PasswordCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewPasswordCache() *PasswordCache {
	return &PasswordCache{entries: make(map[string]cacheEntry)}
}

func (c *PasswordCache) Get(_ context.Context, eventID string, now time.Time) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[eventID]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.After(now) {
		delete(c.entries, eventID)
		return "", false, nil
	}
	return entry.password, true, nil
}

func (c *PasswordCache) Set(_ context.Context, eventID string, password string, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[eventID] = cacheEntry{
		password:  password,
		expiresAt: expiresAt.UTC(),
	}
	return nil
}

func (c *PasswordCache) Invalidate(_ context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, eventID)
	return nil
}
