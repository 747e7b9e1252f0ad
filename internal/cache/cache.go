// Package cache stores translated text so repeated titles are translated once.
package cache

import (
	"context"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Cache is a string key-value store for translations.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TranslationKey returns the cache key of text translated into target. Source text is
// hashed so keys stay short and free of Arabic script.
func TranslationKey(target, text string) string {
	sum := blake2b.Sum256([]byte(text))
	return "translate:" + target + ":" + hex.EncodeToString(sum[:16])
}

// Memory is an in-process Cache.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
