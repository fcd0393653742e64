// Package registered implements the registered key derivation tree. Every
// protocol registered with a ZIP number owns the subtree rooted at the
// hardened child of that number, and derives its keys there through a
// subpath of indices and optional byte-string tags.
//
// Unlike the arbitrary tree, invalid inputs are reported as errors so that
// wallets can surface them to users.
package registered

import (
	"errors"
	"fmt"

	"github.com/lightningnetwork/zip32"
	"github.com/lightningnetwork/zip32/hdkd"
	"github.com/lightningnetwork/zip32/prf"
)

var (
	// ErrEmptySubpath is returned when a cryptovalue is requested for an
	// empty subpath. The root of a ZIP subtree has no full-width value.
	ErrEmptySubpath = errors.New("subpath must not be empty")
)

// Context is the derivation context of the registered tree.
type Context struct{}

// A compile time check to ensure Context implements the hdkd.Context
// interface.
var _ hdkd.Context = Context{}

// MKGDomain returns the master key generation personalization of the
// registered tree.
func (Context) MKGDomain() [prf.PersonalizationSize]byte {
	return [prf.PersonalizationSize]byte{
		'Z', 'I', 'P', 'R', 'e', 'g', 'i', 's',
		't', 'e', 'r', 'e', 'd', '_', 'K', 'D',
	}
}

// CKDDomain returns the child key derivation domain of the registered tree.
func (Context) CKDDomain() prf.Domain {
	return prf.RegisteredZip32Child
}

// PathElement is a single step of a subpath: a child index and a tag, which
// may be empty.
type PathElement struct {
	// Index is the hardened child index of this step.
	Index zip32.ChildIndex

	// Tag is mixed into the derivation alongside Index. A nil tag and an
	// empty one are equivalent.
	Tag []byte
}

// String renders the element as N' or N':hex(tag).
func (p PathElement) String() string {
	if len(p.Tag) == 0 {
		return p.Index.String()
	}

	return fmt.Sprintf("%v:%x", p.Index, p.Tag)
}

// SecretKey is an extended secret key in the registered tree.
type SecretKey struct {
	inner *hdkd.Key[Context]
}

// FromSubpath derives the key at the given subpath of the subtree owned by
// zipNumber:
//
//	m_Registered / zipNumber' / subpath...
//
// The context string must be between 1 and 252 bytes and the seed between 32
// and 252 bytes.
func FromSubpath(contextString, seed []byte, zipNumber uint16,
	subpath []PathElement) (*SecretKey, error) {

	xsk, err := subtreeRoot(contextString, seed, zipNumber)
	if err != nil {
		return nil, err
	}

	xsk = deriveTagged(xsk, subpath)

	log.Tracef("Derived registered key for ZIP %d at depth %d",
		zipNumber, len(subpath))

	return &SecretKey{inner: xsk}, nil
}

// CryptovalueFromSubpath derives the 64-byte cryptovalue at the given,
// non-empty, subpath of the subtree owned by zipNumber. Every element but the
// last is derived as a regular child, and the last one as a full-width leaf.
//
// The returned value cannot be used as the root of further derivation.
func CryptovalueFromSubpath(contextString, seed []byte, zipNumber uint16,
	subpath []PathElement) (hdkd.FullWidth, error) {

	if len(subpath) == 0 {
		return hdkd.FullWidth{}, ErrEmptySubpath
	}

	xsk, err := subtreeRoot(contextString, seed, zipNumber)
	if err != nil {
		return hdkd.FullWidth{}, err
	}

	last := subpath[len(subpath)-1]
	parent := deriveTagged(xsk, subpath[:len(subpath)-1])
	defer parent.Zero()

	log.Tracef("Derived registered cryptovalue for ZIP %d at depth %d",
		zipNumber, len(subpath))

	return parent.DeriveFullWidth(last.Index, last.Tag), nil
}

// subtreeRoot validates the inputs and derives the root of the subtree of
// zipNumber.
func subtreeRoot(contextString, seed []byte,
	zipNumber uint16) (*hdkd.Key[Context], error) {

	ikm, err := hdkd.PackIKM(contextString, seed)
	if err != nil {
		return nil, fmt.Errorf("unable to derive master key: %w", err)
	}

	master := hdkd.Master[Context](ikm...)
	defer master.Zero()

	return master.DeriveChild(zip32.Hardened(uint32(zipNumber))), nil
}

// deriveTagged folds tagged child derivation over subpath starting from xsk.
// Intermediate keys, including xsk itself when subpath isn't empty, are zeroed
// once their child has been derived.
func deriveTagged(xsk *hdkd.Key[Context],
	subpath []PathElement) *hdkd.Key[Context] {

	for _, elem := range subpath {
		child := xsk.DeriveChildWithTag(elem.Index, elem.Tag)
		xsk.Zero()
		xsk = child
	}

	return xsk
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

// Equal returns true if both keys are identical, compared in constant time.
func (k *SecretKey) Equal(other *SecretKey) bool {
	return k.inner.Equal(other.inner)
}

// Zero overwrites the key material with zeroes.
func (k *SecretKey) Zero() {
	k.inner.Zero()
}
