package zip32

import (
	"encoding/binary"
	"errors"
)

// DiversifierIndexSize is the size in bytes of a diversifier index.
const DiversifierIndexSize = 11

// ErrDiversifierIndexOverflow is returned when incrementing a diversifier
// index would wrap around.
var ErrDiversifierIndexOverflow = errors.New("diversifier index " +
	"increment overflowed")

// DiversifierIndex is the index of a particular diversifier, an 88-bit
// little-endian integer. The zero value is index 0.
type DiversifierIndex struct {
	j [DiversifierIndexSize]byte
}

// DiversifierIndexFromUint32 returns the diversifier index with value j.
func DiversifierIndexFromUint32(j uint32) DiversifierIndex {
	var d DiversifierIndex
	binary.LittleEndian.PutUint32(d.j[:4], j)

	return d
}

// DiversifierIndexFromUint64 returns the diversifier index with value j.
func DiversifierIndexFromUint64(j uint64) DiversifierIndex {
	var d DiversifierIndex
	binary.LittleEndian.PutUint64(d.j[:8], j)

	return d
}

// DiversifierIndexFromBytes wraps the raw little-endian encoding of an index.
func DiversifierIndexFromBytes(j [DiversifierIndexSize]byte) DiversifierIndex {
	return DiversifierIndex{j: j}
}

// Bytes returns the raw little-endian bytes of the diversifier index.
func (d DiversifierIndex) Bytes() [DiversifierIndexSize]byte {
	return d.j
}

// Uint32 returns the index as a uint32, or ErrOutOfRange if any of the bytes
// above the low four are set.
func (d DiversifierIndex) Uint32() (uint32, error) {
	for _, b := range d.j[4:] {
		if b != 0 {
			return 0, ErrOutOfRange
		}
	}

	return binary.LittleEndian.Uint32(d.j[:4]), nil
}

// Increment adds one to the index. If the index is already at its maximum
// value it wraps to zero and ErrDiversifierIndexOverflow is returned.
func (d *DiversifierIndex) Increment() error {
	for k := range d.j {
		d.j[k]++
		if d.j[k] != 0 {
			return nil
		}
	}

	return ErrDiversifierIndexOverflow
}
