// Package hdkd implements the generic framework for hardened-only key
// derivation. A derivation tree is an instantiation of this framework with its
// own Context, a pair of domain separators that MUST be distinct from those of
// every other tree.
//
// Keys are parameterized by their Context type, so a Key of one tree can never
// be used where a Key of another tree is expected.
package hdkd

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/lightningnetwork/zip32"
	"github.com/lightningnetwork/zip32/prf"
)

const (
	// SecretKeySize is the size in bytes of the secret half of a key.
	SecretKeySize = 32

	// FullWidthSize is the size in bytes of a full-width cryptovalue.
	FullWidthSize = prf.OutputSize
)

// Context is the context in which hardened-only key derivation is
// instantiated. Implementations are expected to be zero-sized types returning
// constants.
type Context interface {
	// MKGDomain is the 16-byte BLAKE2b personalization used during master
	// key generation. It SHOULD be disjoint from every other BLAKE2b
	// personalization in use.
	MKGDomain() [prf.PersonalizationSize]byte

	// CKDDomain is the PRF^Expand domain used during child key
	// derivation.
	CKDDomain() prf.Domain
}

// Key is an extended secret key of the tree identified by C: a 32-byte secret
// and a chain code.
type Key[C Context] struct {
	sk        [SecretKeySize]byte
	chainCode zip32.ChainCode
}

// Master generates the master key of a tree from the given input key
// material:
//
//	I := BLAKE2b-512(C.MKGDomain, ikm[0] || ikm[1] || ...)
//
// The first half of I becomes the secret and the second half the chain code.
// The caller is responsible for encoding ikm unambiguously, see PackIKM.
func Master[C Context](ikm ...[]byte) *Key[C] {
	var ctx C
	i := prf.MasterHash(ctx.MKGDomain(), ikm...)

	log.Tracef("Generated master key for context %T from %d IKM parts",
		ctx, len(ikm))

	return split[C](&i)
}

// FromParts reconstructs a key from the parts of a key previously derived in
// the same tree. It is the only way to build a Key from raw bytes.
func FromParts[C Context](sk [SecretKeySize]byte,
	chainCode zip32.ChainCode) *Key[C] {

	return &Key[C]{
		sk:        sk,
		chainCode: chainCode,
	}
}

// Parts returns copies of the secret and the chain code of this key.
func (k *Key[C]) Parts() ([SecretKeySize]byte, zip32.ChainCode) {
	return k.sk, k.chainCode
}

// DeriveChild derives the child key at the given index. It is equivalent to
// DeriveChildWithTag(index, nil).
func (k *Key[C]) DeriveChild(index zip32.ChildIndex) *Key[C] {
	return k.DeriveChildWithTag(index, nil)
}

// DeriveChildWithTag derives the child key at the given index and (possibly
// empty) tag:
//
//	I := PRF^Expand(c_par, [C.CKDDomain] || sk_par || I2LEOSP32(i) || lead || tag)
//
// where lead is omitted entirely for an empty tag and is 0x00 otherwise.
func (k *Key[C]) DeriveChildWithTag(index zip32.ChildIndex,
	tag []byte) *Key[C] {

	i := k.ckdh(index, tag, false)
	defer clear(i[:])

	log.Tracef("Derived child %v with %d byte tag", index, len(tag))

	return split[C](&i)
}

// DeriveFullWidth derives the 64-byte cryptovalue at the given index and
// (possibly empty) tag. The PRF input matches that of DeriveChildWithTag, with
// the lead byte always present and set to 0x01, and the output is returned
// without being split into a secret and a chain code.
//
// NOTE: the returned value is a leaf. It MUST NOT be used as the root of any
// further derivation, e.g. by splitting it and passing the halves to
// FromParts: anyone holding the cryptovalue would then know the "chain code"
// of the resulting subtree. The framework cannot detect this misuse.
func (k *Key[C]) DeriveFullWidth(index zip32.ChildIndex,
	tag []byte) FullWidth {

	log.Tracef("Derived full-width value at %v with %d byte tag", index,
		len(tag))

	return FullWidth{value: k.ckdh(index, tag, true)}
}

// ckdh evaluates the child key derivation PRF.
func (k *Key[C]) ckdh(index zip32.ChildIndex, tag []byte,
	fullWidthLeaf bool) [prf.OutputSize]byte {

	var ctx C

	var indexBytes [4]byte
	binary.LittleEndian.PutUint32(indexBytes[:], index.Index())

	parts := [][]byte{k.sk[:], indexBytes[:]}

	// The lead byte is left out when there's neither a tag nor a
	// full-width leaf, which keeps the encoding identical to the plain
	// tag-less derivation.
	if len(tag) != 0 || fullWidthLeaf {
		var lead byte
		if fullWidthLeaf {
			lead = 0x01
		}
		parts = append(parts, []byte{lead}, tag)
	}

	return prf.Expand(k.chainCode.Bytes(), ctx.CKDDomain(), parts...)
}

// Equal returns true if both keys have the same chain code and secret. Both
// halves are always compared, in constant time.
func (k *Key[C]) Equal(other *Key[C]) bool {
	cc, otherCC := k.chainCode.Bytes(), other.chainCode.Bytes()

	ccEq := subtle.ConstantTimeCompare(cc[:], otherCC[:])
	skEq := subtle.ConstantTimeCompare(k.sk[:], other.sk[:])

	return ccEq&skEq == 1
}

// Zero overwrites the secret and the chain code of the key with zeroes.
func (k *Key[C]) Zero() {
	clear(k.sk[:])
	k.chainCode.Zero()
}

// split turns a PRF output into a key, I_L being the secret and I_R the chain
// code.
func split[C Context](i *[prf.OutputSize]byte) *Key[C] {
	var (
		sk [SecretKeySize]byte
		cc [zip32.ChainCodeSize]byte
	)
	copy(sk[:], i[:SecretKeySize])
	copy(cc[:], i[SecretKeySize:])

	return &Key[C]{
		sk:        sk,
		chainCode: zip32.NewChainCode(cc),
	}
}

// FullWidth is a 64-byte cryptovalue derived with Key.DeriveFullWidth. It has
// no derivation methods on purpose: it is a leaf of the tree.
type FullWidth struct {
	value [FullWidthSize]byte
}

// Bytes returns a copy of the cryptovalue.
func (f FullWidth) Bytes() [FullWidthSize]byte {
	return f.value
}

// Equal compares two cryptovalues in constant time.
func (f FullWidth) Equal(other FullWidth) bool {
	return subtle.ConstantTimeCompare(f.value[:], other.value[:]) == 1
}

// Zero overwrites the cryptovalue with zeroes.
func (f *FullWidth) Zero() {
	clear(f.value[:])
}
