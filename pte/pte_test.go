package pte

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresentRoundTrip(t *testing.T) {
	p := NewPresent(42)
	require.True(t, p.IsPresent())
	require.False(t, p.IsSwapped())
	require.False(t, p.IsUnmapped())
	require.Equal(t, uint32(42), p.Frame())
}

func TestSwappedRoundTrip(t *testing.T) {
	p := NewSwapped(3, 17)
	require.True(t, p.IsSwapped())
	require.False(t, p.IsPresent())
	require.Equal(t, uint32(17), p.SwapFrame())
	require.Equal(t, uint32(3), p.SwapDevice())
}

func TestUnmapped(t *testing.T) {
	require.True(t, Unmapped.IsUnmapped())
	require.False(t, Unmapped.IsPresent())
	require.False(t, Unmapped.IsSwapped())
}

func TestFramePanicsWhenNotPresent(t *testing.T) {
	require.Panics(t, func() { Unmapped.Frame() })
	require.Panics(t, func() { NewSwapped(0, 0).Frame() })
}

func TestNewPresentPanicsOnOverflow(t *testing.T) {
	require.Panics(t, func() { NewPresent(1 << 20) })
}

func TestNewSwappedPanicsOnOverflow(t *testing.T) {
	require.Panics(t, func() { NewSwapped(1<<4, 0) })
	require.Panics(t, func() { NewSwapped(0, 1<<20) })
}
