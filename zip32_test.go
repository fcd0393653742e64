package zip32

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestChildIndexFromIndex asserts that only values with the hardened bit set
// are accepted as child indices.
func TestChildIndexFromIndex(t *testing.T) {
	t.Parallel()

	require.True(t, ChildIndexFromIndex(0).IsNone())
	require.True(t, ChildIndexFromIndex(HardenedKeyStart-1).IsNone())

	idx := ChildIndexFromIndex(HardenedKeyStart).UnwrapOrFail(t)
	require.Equal(t, HardenedKeyStart, idx.Index())
	require.Equal(t, "0'", idx.String())

	idx = ChildIndexFromIndex(0xffffffff).UnwrapOrFail(t)
	require.Equal(t, uint32(0xffffffff), idx.Index())
}

// TestHardenedBitInvariant checks with random inputs that the two
// constructors of ChildIndex agree on the hardened bit.
func TestHardenedBitInvariant(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint32Range(0, HardenedKeyStart-1).Draw(t, "v")

		require.True(t, ChildIndexFromIndex(v).IsNone())

		idx := Hardened(v)
		require.GreaterOrEqual(t, idx.Index(), HardenedKeyStart)
		require.Equal(t, v+HardenedKeyStart, idx.Index())

		parsed := ChildIndexFromIndex(idx.Index())
		require.True(t, parsed.IsSome())
		require.True(t, parsed.UnsafeFromSome().Equal(idx))
	})
}

// TestChildIndexZeroValue asserts that the zero value of ChildIndex is the
// hardened index 0'.
func TestChildIndexZeroValue(t *testing.T) {
	t.Parallel()

	var idx ChildIndex
	require.GreaterOrEqual(t, idx.Index(), HardenedKeyStart)
	require.Equal(t, HardenedKeyStart, idx.Index())
	require.True(t, idx.Equal(Hardened(0)))
	require.Equal(t, "0'", idx.String())
}

// TestHardenedPanics asserts that Hardened refuses values that already have
// the hardened bit set.
func TestHardenedPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Hardened(HardenedKeyStart) })
	require.Panics(t, func() { Hardened(0xffffffff) })
	require.NotPanics(t, func() { Hardened(HardenedKeyStart - 1) })
}

// TestChainCodeEqual exercises the constant-time chain code comparison and
// zeroization.
func TestChainCodeEqual(t *testing.T) {
	t.Parallel()

	var raw [ChainCodeSize]byte
	for i := range raw {
		raw[i] = byte(i)
	}

	a := NewChainCode(raw)
	b := NewChainCode(raw)
	require.True(t, a.Equal(b))
	require.Equal(t, raw, a.Bytes())

	raw[31] ^= 0x01
	c := NewChainCode(raw)
	require.False(t, a.Equal(c))

	c.Zero()
	require.Equal(t, [ChainCodeSize]byte{}, c.Bytes())
}

// TestAccountID checks the 31-bit bound on account identifiers and their
// mapping to hardened indices.
func TestAccountID(t *testing.T) {
	t.Parallel()

	_, err := NewAccountID(HardenedKeyStart)
	require.ErrorIs(t, err, ErrOutOfRange)

	account, err := NewAccountID(7)
	require.NoError(t, err)
	require.Equal(t, uint32(7), account.Uint32())
	require.Equal(t, HardenedKeyStart+7, account.ChildIndex().Index())
}

// TestScopeString asserts the human readable names of the scopes.
func TestScopeString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "external", ScopeExternal.String())
	require.Equal(t, "internal", ScopeInternal.String())
	require.Equal(t, "unknown", Scope(9).String())
}
