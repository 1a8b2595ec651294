package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter встроенный запасной вариант на случай недоступного Redis.
type MemoryLimiter struct {
	entries sync.Map
	mu      sync.Mutex
}

type limiterEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	var entry *limiterEntry
	if val, ok := m.entries.Load(key); ok {
		entry = val.(*limiterEntry)
	}

	if entry == nil || now.After(entry.expiresAt) {
		entry = &limiterEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry.count++
	}

	m.entries.Store(key, entry)
	return entry.count <= limit, nil
}
