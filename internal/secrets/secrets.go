// Package secrets provides read-only access to API credentials held in
// a secret backend, so the KOMOJU secret key never has to live in
// plain environment configuration.
package secrets

import (
	"context"
	"sync"
	"time"
)

// Secret is a retrieved secret with metadata
type Secret struct {
	Value     string
	Version   string
	Metadata  map[string]string
	CreatedAt string
}

// Source retrieves secrets by path from a backend. Implementations
// handle authentication with the backend and cache values with a TTL.
type Source interface {
	GetSecret(ctx context.Context, path string) (*Secret, error)
}

// secretCache is a simple TTL cache shared by the backends
type secretCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	enabled bool
	ttl     time.Duration
}

type cacheEntry struct {
	secret    *Secret
	expiresAt time.Time
}

func newSecretCache(enabled bool, ttl time.Duration) *secretCache {
	return &secretCache{
		entries: make(map[string]*cacheEntry),
		enabled: enabled,
		ttl:     ttl,
	}
}

func (c *secretCache) get(path string) *Secret {
	if !c.enabled {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[path]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, path)
		return nil
	}
	return entry.secret
}

func (c *secretCache) set(path string, secret *Secret) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = &cacheEntry{
		secret:    secret,
		expiresAt: time.Now().Add(c.ttl),
	}
}
