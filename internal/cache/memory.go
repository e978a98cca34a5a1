// Package cache provides an explicitly-scoped in-memory counter store for
// the request rate limiter. It implements fiber.Storage so it can be
// injected into the limiter middleware, unit-tested on its own, and swapped
// for a shared store in a multi-process deployment.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Memory is a TTL key/value store with a background eviction sweep.
type Memory struct {
	mu    sync.RWMutex
	items map[string]item
	done  chan struct{}
	once  sync.Once
}

// NewMemory starts the eviction sweep at the given interval.
func NewMemory(sweepInterval time.Duration) *Memory {
	m := &Memory{
		items: make(map[string]item),
		done:  make(chan struct{}),
	}
	go m.sweep(sweepInterval)
	return m
}

func (m *Memory) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, it := range m.items {
				if !it.expiresAt.IsZero() && now.After(it.expiresAt) {
					delete(m.items, k)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Get returns nil for missing or expired keys, matching fiber.Storage
// semantics.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !it.expiresAt.IsZero() && time.Now().After(it.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, nil
	}
	return it.value, nil
}

func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	it := item{value: val}
	if exp > 0 {
		it.expiresAt = time.Now().Add(exp)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	m.items = make(map[string]item)
	m.mu.Unlock()
	return nil
}

// Close stops the eviction sweep. Safe to call more than once.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

// Len reports the current number of stored keys, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
