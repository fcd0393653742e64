// Package prf implements the domain-separated hash primitives that the
// hardened-only derivation trees are built on: a personalized BLAKE2b-512
// used for master key generation, and PRF^Expand used for child key
// derivation.
package prf

import (
	"fmt"

	"github.com/dchest/blake2b"
)

const (
	// PersonalizationSize is the length of a BLAKE2b personalization
	// string.
	PersonalizationSize = 16

	// OutputSize is the size in bytes of the output of MasterHash and
	// Expand.
	OutputSize = 64

	// KeySize is the size of the key passed to Expand.
	KeySize = 32
)

// expandPersonalization is the BLAKE2b personalization of PRF^Expand.
var expandPersonalization = []byte("Zcash_ExpandSeed")

// Domain is the single-byte domain selector that PRF^Expand prepends to its
// input. Every derivation tree uses its own Domain, so that equal keys and
// inputs never produce colliding outputs across trees.
type Domain byte

const (
	// AdhocZip32Child is the child key derivation domain of the ad-hoc
	// (formerly "arbitrary") tree.
	AdhocZip32Child Domain = 0xab

	// RegisteredZip32Child is the child key derivation domain of the
	// registered tree.
	RegisteredZip32Child Domain = 0xac
)

// String returns the domain selector in hex.
func (d Domain) String() string {
	return fmt.Sprintf("0x%02x", byte(d))
}

// Blake2b returns the size-byte BLAKE2b digest of the concatenation of parts,
// using the given personalization. personal must be at most 16 bytes and size
// between 1 and 64; anything else is a programming error and panics.
func Blake2b(size int, personal []byte, parts ...[]byte) []byte {
	if size < 1 || size > OutputSize {
		panic(fmt.Sprintf("prf: invalid blake2b digest size %d", size))
	}

	h, err := blake2b.New(&blake2b.Config{
		Size:   uint8(size),
		Person: personal,
	})
	if err != nil {
		panic(fmt.Sprintf("prf: invalid blake2b parameters: %v", err))
	}

	for _, part := range parts {
		// Writes to a hash.Hash never fail.
		_, _ = h.Write(part)
	}

	return h.Sum(nil)
}

// MasterHash computes I := BLAKE2b-512(domain, parts[0] || parts[1] || ...).
func MasterHash(domain [PersonalizationSize]byte,
	parts ...[]byte) [OutputSize]byte {

	var out [OutputSize]byte
	copy(out[:], Blake2b(OutputSize, domain[:], parts...))

	return out
}

// Expand computes PRF^Expand_key([d] || parts[0] || parts[1] || ...), which
// is BLAKE2b-512 personalized with "Zcash_ExpandSeed" over
// key || [d] || parts.
func Expand(key [KeySize]byte, d Domain, parts ...[]byte) [OutputSize]byte {
	input := make([][]byte, 0, len(parts)+2)
	input = append(input, key[:], []byte{byte(d)})
	input = append(input, parts...)

	var out [OutputSize]byte
	copy(out[:], Blake2b(OutputSize, expandPersonalization, input...))

	return out
}
