package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_Enabled(t *testing.T) {
	t.Parallel()

	m := NewManager("counter_reconcile=on, new_search=off, beta_feed=50%, junk, broken=")

	assert.True(t, m.Enabled(FlagCounterReconcile, 1))
	assert.True(t, m.Enabled("COUNTER_RECONCILE", 1), "flag names are case-insensitive")
	assert.False(t, m.Enabled("new_search", 1))
	assert.False(t, m.Enabled("unknown", 1))
	assert.False(t, m.Enabled("junk", 1))
	assert.False(t, m.Enabled("broken", 1))
}

func TestManager_PercentRollout(t *testing.T) {
	t.Parallel()

	m := NewManager("beta_feed=50%")

	// Deterministic per user: the same user always lands in the same bucket.
	first := m.Enabled("beta_feed", 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Enabled("beta_feed", 42))
	}

	// Anonymous users never join a partial rollout.
	assert.False(t, m.Enabled("beta_feed", 0))

	assert.True(t, NewManager("beta_feed=100%").Enabled("beta_feed", 0))
	assert.False(t, NewManager("beta_feed=0%").Enabled("beta_feed", 7))
}

func TestManager_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.False(t, m.Enabled(FlagCounterReconcile, 1))
}

func TestManager_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewManager("counter_reconcile=on,new_search=off")
	snap := m.Snapshot(1)
	assert.Equal(t, map[string]bool{
		"counter_reconcile": true,
		"new_search":        false,
	}, snap)
}
