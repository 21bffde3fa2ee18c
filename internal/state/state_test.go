package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTrackerWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewMemoryTracker()
	tracker.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	active, err := tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.False(t, active, "untracked rule should be inactive")

	require.NoError(t, tracker.Mark(ctx, "rule-1", 5*time.Minute))

	active, err = tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.True(t, active)

	// Still inside the window.
	now = now.Add(4 * time.Minute)
	active, err = tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.True(t, active)

	// Past the window.
	now = now.Add(2 * time.Minute)
	active, err = tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemoryTrackerZeroTTLIsNoop(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	require.NoError(t, tracker.Mark(ctx, "rule-1", 0))
	active, err := tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemoryTrackerKeysAreIndependent(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	require.NoError(t, tracker.Mark(ctx, "rule-1", time.Hour))

	active, err := tracker.Active(ctx, "rule-2")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = tracker.Active(ctx, "rule-1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestMemoryTrackerConcurrentAccess(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = tracker.Mark(ctx, "shared", time.Minute)
				_, _ = tracker.Active(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	active, err := tracker.Active(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, active)
	require.NoError(t, tracker.Close())
}
