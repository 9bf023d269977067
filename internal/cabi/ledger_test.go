package cabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerNextKeyReleasesPrevious(t *testing.T) {
	l := NewLedger()
	l.Track(1, 0x100)
	p, ok := l.Release(1)
	require.True(t, ok)
	assert.Equal(t, uintptr(0x100), p)
	_, ok = l.Release(1)
	assert.False(t, ok, "second release of the same handle")
	assert.Zero(t, l.Outstanding())
}

func TestLedgerFreeBeforeNextKey(t *testing.T) {
	l := NewLedger()
	l.Track(1, 0x100)
	require.True(t, l.Free(0x100))
	assert.False(t, l.Free(0x100), "double free")
	_, ok := l.Release(1)
	assert.False(t, ok, "process_key must not free a string the host freed")
}

func TestLedgerAddressReuseAcrossHandles(t *testing.T) {
	l := NewLedger()
	l.Track(1, 0x100)
	require.True(t, l.Free(0x100))
	// malloc hands the same address to handle 2.
	l.Track(2, 0x100)
	_, ok := l.Release(1)
	assert.False(t, ok, "handle 1 must not free handle 2's string")
	p, ok := l.Release(2)
	require.True(t, ok)
	assert.Equal(t, uintptr(0x100), p)
}

func TestLedgerStaleHandle(t *testing.T) {
	l := NewLedger()
	l.Track(1, 0x100)
	_, ok := l.Release(1) // engine_free
	require.True(t, ok)
	assert.False(t, l.Free(0x100), "string died with its handle")
	_, ok = l.Release(1)
	assert.False(t, ok)
}

func TestLedgerCallerOwnedStrings(t *testing.T) {
	l := NewLedger()
	l.Track(0, 0x200)
	l.Track(0, 0)
	assert.Equal(t, 1, l.Outstanding())
	assert.True(t, l.Free(0x200))
	assert.False(t, l.Free(0x200))
	assert.False(t, l.Free(0x300), "unknown pointer")
}
