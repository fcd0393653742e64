package hdkd

import (
	"errors"
	"fmt"
)

const (
	// MinContextStringLen is the minimum length of a context string.
	MinContextStringLen = 1

	// MaxContextStringLen is the maximum length of a context string.
	MaxContextStringLen = 252

	// MinSeedLen is the minimum length of a seed.
	MinSeedLen = 32

	// MaxSeedLen is the maximum length of a seed.
	MaxSeedLen = 252
)

var (
	// ErrInvalidContextString is returned when a context string is empty
	// or longer than MaxContextStringLen bytes.
	ErrInvalidContextString = errors.New("context string must be " +
		"between 1 and 252 bytes")

	// ErrInvalidSeedLength is returned when a seed is shorter than
	// MinSeedLen or longer than MaxSeedLen bytes.
	ErrInvalidSeedLength = errors.New("seed must be between 32 and 252 " +
		"bytes")
)

// PackIKM validates the context string and seed and returns the input key
// material of master key generation:
//
//	[len(contextString)] || contextString || [len(seed)] || seed
//
// Each length is a single byte, which is why both inputs are capped at 252
// bytes. The returned parts alias the given slices.
func PackIKM(contextString, seed []byte) ([][]byte, error) {
	if len(contextString) < MinContextStringLen ||
		len(contextString) > MaxContextStringLen {

		return nil, fmt.Errorf("%w: got %d bytes",
			ErrInvalidContextString, len(contextString))
	}

	if len(seed) < MinSeedLen || len(seed) > MaxSeedLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSeedLength,
			len(seed))
	}

	return [][]byte{
		{byte(len(contextString))},
		contextString,
		{byte(len(seed))},
		seed,
	}, nil
}
