package cache

import (
	"context"
	"time"
)

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically sweeps expired entries from registered caches.
type Manager struct {
	caches []Cleaner
}

func NewManager(caches ...Cleaner) *Manager {
	return &Manager{caches: caches}
}

// Register adds a cache to the sweep set. Not safe to call after Run starts.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// Run sweeps every interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
