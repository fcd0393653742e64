// Package fingerprint computes seed fingerprints: public, non-secret
// identifiers that let a wallet tell its seeds apart without revealing them.
//
// A fingerprint is rendered as a bech32m string with the human readable part
// "zip32seedfp".
package fingerprint

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/zip32/hdkd"
	"github.com/lightningnetwork/zip32/prf"
)

const (
	// Size is the size in bytes of a seed fingerprint.
	Size = 32

	// HRP is the human readable part of the text form of a fingerprint.
	HRP = "zip32seedfp"
)

// personalization is the BLAKE2b personalization of the fingerprint hash.
var personalization = []byte("Zcash_HD_Seed_FP")

var (
	// ErrNotBech32m is returned when a string is not a valid bech32m
	// string, either because it's malformed, its checksum is wrong, or it
	// uses the bech32 checksum rather than bech32m.
	ErrNotBech32m = errors.New("not a valid bech32m string")

	// ErrNotSeedFingerprint is returned when a bech32m string carries a
	// human readable part other than HRP.
	ErrNotSeedFingerprint = errors.New("not a seed fingerprint")

	// ErrInvalidLength is returned when the payload of a seed fingerprint
	// string does not decode to exactly Size bytes.
	ErrInvalidLength = errors.New("invalid seed fingerprint length")
)

// SeedFingerprint is the fingerprint of a seed.
type SeedFingerprint struct {
	fp [Size]byte
}

// FromSeed computes the fingerprint of the given seed:
//
//	BLAKE2b-256("Zcash_HD_Seed_FP", [len(seed)] || seed)
//
// None is returned if the seed is shorter than 32 or longer than 252 bytes.
func FromSeed(seed []byte) fn.Option[SeedFingerprint] {
	if len(seed) < hdkd.MinSeedLen || len(seed) > hdkd.MaxSeedLen {
		log.Debugf("Refusing to fingerprint %d byte seed", len(seed))
		return fn.None[SeedFingerprint]()
	}

	var f SeedFingerprint
	copy(f.fp[:], prf.Blake2b(
		Size, personalization, []byte{byte(len(seed))}, seed,
	))

	log.Tracef("Computed seed fingerprint %v", f)

	return fn.Some(f)
}

// FromBytes wraps the raw bytes of a previously computed fingerprint.
func FromBytes(b [Size]byte) SeedFingerprint {
	return SeedFingerprint{fp: b}
}

// Bytes returns the raw bytes of the fingerprint.
func (f SeedFingerprint) Bytes() [Size]byte {
	return f.fp
}

// Equal returns true if both fingerprints are identical.
func (f SeedFingerprint) Equal(other SeedFingerprint) bool {
	return subtle.ConstantTimeCompare(f.fp[:], other.fp[:]) == 1
}

// String returns the bech32m encoding of the fingerprint.
func (f SeedFingerprint) String() string {
	// Neither call can fail: the conversion is padded, and the result is
	// far below the bech32 length limit.
	data, err := bech32.ConvertBits(f.fp[:], 8, 5, true)
	if err != nil {
		panic(err)
	}

	s, err := bech32.EncodeM(HRP, data)
	if err != nil {
		panic(err)
	}

	return s
}

// GoString renders the fingerprint as the Go expression that builds it.
func (f SeedFingerprint) GoString() string {
	return fmt.Sprintf("fingerprint.FromBytes(%#v)", f.fp)
}

// Parse decodes the bech32m text form of a fingerprint. The payload must hold
// exactly Size whole bytes; the padding bits of its final group are ignored,
// so they need not be zero.
func Parse(s string) (SeedFingerprint, error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return SeedFingerprint{}, fmt.Errorf("%w: %v", ErrNotBech32m,
			err)
	}
	if version != bech32.VersionM {
		return SeedFingerprint{}, fmt.Errorf("%w: wrong checksum "+
			"variant", ErrNotBech32m)
	}

	if hrp != HRP {
		return SeedFingerprint{}, fmt.Errorf("%w: unexpected human "+
			"readable part %q", ErrNotSeedFingerprint, hrp)
	}

	// Only whole bytes count towards the length. Any trailing bits of the
	// last group are dropped without being checked.
	if len(data)*5/8 != Size {
		return SeedFingerprint{}, fmt.Errorf("%w: got %d bytes",
			ErrInvalidLength, len(data)*5/8)
	}

	b, err := bech32.ConvertBits(data, 5, 8, true)
	if err != nil {
		return SeedFingerprint{}, fmt.Errorf("%w: %v", ErrInvalidLength,
			err)
	}

	var f SeedFingerprint
	copy(f.fp[:], b)

	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f SeedFingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SeedFingerprint) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}
