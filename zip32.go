// Package zip32 holds the primitive value types shared by the hardened-only
// key derivation trees: child indices, chain codes, account identifiers and
// diversifier indices.
//
// The derivation framework itself lives in the hdkd package, and the two
// instantiations of it in the adhoc and registered packages. The fingerprint
// package computes a public identifier for a seed.
package zip32

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	// HardenedKeyStart is the index at which a hardened child index
	// starts. Only hardened derivation is supported, so every valid
	// ChildIndex is >= HardenedKeyStart.
	HardenedKeyStart uint32 = 0x80000000 // 2^31

	// ChainCodeSize is the size in bytes of a chain code.
	ChainCodeSize = 32
)

var (
	// ErrOutOfRange is returned when an integral conversion is attempted
	// on a value that does not fit the target type.
	ErrOutOfRange = errors.New("out of range integral type conversion " +
		"attempted")
)

// ChildIndex is the index of a derived child key. Only hardened derivation is
// supported, so only the value below the hardened bit is stored and the zero
// value is the index 0'.
type ChildIndex struct {
	value uint32
}

// ChildIndexFromIndex parses a raw child index, including its hardened bit.
// None is returned if the hardened bit is not set.
func ChildIndexFromIndex(i uint32) fn.Option[ChildIndex] {
	if i < HardenedKeyStart {
		return fn.None[ChildIndex]()
	}

	return fn.Some(ChildIndex{value: i &^ HardenedKeyStart})
}

// Hardened constructs a hardened ChildIndex from the given value.
//
// NOTE: this panics if value >= 2^31, as such a value cannot be represented
// as a hardened index and passing one is a programming error.
func Hardened(value uint32) ChildIndex {
	if value >= HardenedKeyStart {
		panic(fmt.Sprintf("zip32: hardened index value %d out of range",
			value))
	}

	return ChildIndex{value: value}
}

// Index returns the index as a 32-bit integer, including the hardened bit.
func (c ChildIndex) Index() uint32 {
	return c.value | HardenedKeyStart
}

// Equal returns true if both indices are identical. The comparison is
// performed in constant time.
func (c ChildIndex) Equal(other ChildIndex) bool {
	return subtle.ConstantTimeEq(int32(c.value), int32(other.value)) == 1
}

// String renders the index in the usual path notation, e.g. 32'.
func (c ChildIndex) String() string {
	return fmt.Sprintf("%d'", c.value)
}

// ChainCode is the value that is needed, in addition to a secret key, in
// order to derive descendant keys of that key.
//
// NOTE: chain codes are secret-adjacent material. Compare them with Equal,
// which runs in constant time, never with ==.
type ChainCode struct {
	code [ChainCodeSize]byte
}

// NewChainCode constructs a ChainCode from the given array.
func NewChainCode(c [ChainCodeSize]byte) ChainCode {
	return ChainCode{code: c}
}

// Bytes returns a copy of the byte representation of the chain code.
func (c ChainCode) Bytes() [ChainCodeSize]byte {
	return c.code
}

// Equal returns true if both chain codes are identical, without leaking
// through timing where the first difference is.
func (c ChainCode) Equal(other ChainCode) bool {
	return subtle.ConstantTimeCompare(c.code[:], other.code[:]) == 1
}

// Zero overwrites the chain code with zeroes.
func (c *ChainCode) Zero() {
	clear(c.code[:])
}
