package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AllowsUpToLimit(t *testing.T) {
	m := NewMemory(10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ok, err := m.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i+1)
	}
	ok, err := m.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok, "eleventh call within the window must be rejected")
}

func TestMemory_WindowReset(t *testing.T) {
	now := time.Now()
	m := NewMemory(10, time.Minute)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		m.Allow(ctx, "key")
	}
	ok, _ := m.Allow(ctx, "key")
	require.False(t, ok)

	// окно прошло — счётчик начинается заново
	now = now.Add(61 * time.Second)
	ok, err := m.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	m := NewMemory(1, time.Minute)
	ctx := context.Background()

	ok, _ := m.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = m.Allow(ctx, "a")
	assert.False(t, ok)
	ok, _ = m.Allow(ctx, "b")
	assert.True(t, ok)
}
