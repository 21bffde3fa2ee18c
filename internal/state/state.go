// Package state tracks per-rule cooldown windows. The default backend is an
// in-process map; a Redis backend is available when suppression state should
// survive restarts.
package state

import (
	"context"
	"sync"
	"time"
)

// Tracker records when a rule last fired and answers whether its cooldown
// window is still active.
type Tracker interface {
	Active(ctx context.Context, ruleID string) (bool, error)
	Mark(ctx context.Context, ruleID string, ttl time.Duration) error
	Close() error
}

// MemoryTracker is a mutex-guarded in-process tracker.
type MemoryTracker struct {
	mu      sync.Mutex
	expiry  map[string]time.Time
	nowFunc func() time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		expiry:  make(map[string]time.Time),
		nowFunc: time.Now,
	}
}

func (t *MemoryTracker) Active(ctx context.Context, ruleID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	deadline, ok := t.expiry[ruleID]
	if !ok {
		return false, nil
	}
	if t.nowFunc().After(deadline) {
		delete(t.expiry, ruleID)
		return false, nil
	}
	return true, nil
}

func (t *MemoryTracker) Mark(ctx context.Context, ruleID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expiry[ruleID] = t.nowFunc().Add(ttl)
	return nil
}

func (t *MemoryTracker) Close() error { return nil }

var _ Tracker = (*MemoryTracker)(nil)
