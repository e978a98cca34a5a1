package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory(time.Minute)
	defer m.Close()

	require.NoError(t, m.Set("k", []byte("v"), 0))

	got, err := m.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

func TestMemoryMissingKey(t *testing.T) {
	m := NewMemory(time.Minute)
	defer m.Close()

	got, err := m.Get("nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryExpiry(t *testing.T) {
	// Long sweep interval so Get's own expiry check does the work.
	m := NewMemory(time.Hour)
	defer m.Close()

	require.NoError(t, m.Set("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	got, err := m.Get("k")
	require.NoError(t, err)
	require.Nil(t, got)
	require.Zero(t, m.Len())
}

func TestMemorySweepEvicts(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)
	defer m.Close()

	require.NoError(t, m.Set("k", []byte("v"), 5*time.Millisecond))
	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryDeleteAndReset(t *testing.T) {
	m := NewMemory(time.Minute)
	defer m.Close()

	require.NoError(t, m.Set("a", []byte("1"), 0))
	require.NoError(t, m.Set("b", []byte("2"), 0))
	require.Equal(t, 2, m.Len())

	require.NoError(t, m.Delete("a"))
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.Reset())
	require.Zero(t, m.Len())
}

func TestMemoryCloseIsIdempotent(t *testing.T) {
	m := NewMemory(time.Minute)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
