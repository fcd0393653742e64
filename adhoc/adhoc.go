// Package adhoc implements the arbitrary key derivation tree, for deriving
// keys from a seed in contexts that are not coordinated with any other
// protocol.
//
// Keys from this tree are intended for a single application's internal use.
// A protocol that needs its keys to be reproducible by other implementations
// should register a ZIP number and use the registered package instead.
package adhoc

import (
	"fmt"

	"github.com/lightningnetwork/zip32"
	"github.com/lightningnetwork/zip32/hdkd"
	"github.com/lightningnetwork/zip32/prf"
)

// Context is the derivation context of the arbitrary tree.
type Context struct{}

// A compile time check to ensure Context implements the hdkd.Context
// interface.
var _ hdkd.Context = Context{}

// MKGDomain returns the master key generation personalization of the
// arbitrary tree.
func (Context) MKGDomain() [prf.PersonalizationSize]byte {
	return [prf.PersonalizationSize]byte{
		'Z', 'c', 'a', 's', 'h', 'A', 'r', 'b',
		'i', 't', 'r', 'a', 'r', 'y', 'K', 'D',
	}
}

// CKDDomain returns the child key derivation domain of the arbitrary tree.
func (Context) CKDDomain() prf.Domain {
	return prf.AdhocZip32Child
}

// SecretKey is an extended secret key in the arbitrary tree.
type SecretKey struct {
	inner *hdkd.Key[Context]
}

// FromPath derives a key from the given context string, seed and path.
//
// The context string should be a globally unique string naming the
// application, and must be between 1 and 252 bytes. The seed must be between
// 32 and 252 bytes.
//
// NOTE: this panics if either length is out of bounds.
func FromPath(contextString, seed []byte,
	path []zip32.ChildIndex) *SecretKey {

	ikm, err := hdkd.PackIKM(contextString, seed)
	if err != nil {
		panic(fmt.Sprintf("adhoc: %v", err))
	}

	xsk := hdkd.Master[Context](ikm...)
	for _, i := range path {
		child := xsk.DeriveChild(i)
		xsk.Zero()
		xsk = child
	}

	log.Tracef("Derived arbitrary key at depth %d", len(path))

	return &SecretKey{inner: xsk}
}

// Data returns the secret key material.
func (k *SecretKey) Data() [hdkd.SecretKeySize]byte {
	sk, _ := k.inner.Parts()
	return sk
}

// ChainCode returns the chain code of the key.
func (k *SecretKey) ChainCode() zip32.ChainCode {
	_, c := k.inner.Parts()
	return c
}

// IntoFullWidthKey returns the concatenation of the secret key material and
// the chain code.
//
// Deprecated: the returned value shares its second half with the chain code
// of the key, from which every descendant can be derived. It is only kept so
// that existing keys can be reproduced; new uses should derive a cryptovalue
// with registered.CryptovalueFromSubpath instead.
func (k *SecretKey) IntoFullWidthKey() [hdkd.FullWidthSize]byte {
	sk, c := k.inner.Parts()
	cBytes := c.Bytes()

	var key [hdkd.FullWidthSize]byte
	copy(key[:hdkd.SecretKeySize], sk[:])
	copy(key[hdkd.SecretKeySize:], cBytes[:])

	clear(sk[:])
	clear(cBytes[:])

	return key
}

// Equal returns true if both keys are identical, compared in constant time.
func (k *SecretKey) Equal(other *SecretKey) bool {
	return k.inner.Equal(other.inner)
}

// Zero overwrites the key material with zeroes.
func (k *SecretKey) Zero() {
	k.inner.Zero()
}
