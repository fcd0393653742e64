package zip32

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDiversifierIndexToUint32 checks the narrowing conversion against the
// values on either side of the 32-bit boundary.
func TestDiversifierIndexToUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		index   DiversifierIndex
		want    uint32
		wantErr error
	}{
		{
			name: "two",
			index: DiversifierIndexFromBytes([DiversifierIndexSize]byte{
				0x02,
			}),
			want: 2,
		},
		{
			name:  "max uint32",
			index: DiversifierIndexFromUint32(math.MaxUint32),
			want:  math.MaxUint32,
		},
		{
			name: "too big",
			index: DiversifierIndexFromBytes([DiversifierIndexSize]byte{
				0xff, 0xff, 0xff, 0xff, 0x01,
			}),
			wantErr: ErrOutOfRange,
		},
		{
			name:    "from uint64",
			index:   DiversifierIndexFromUint64(1 << 32),
			wantErr: ErrOutOfRange,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.index.Uint32()
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

// TestDiversifierIndexIncrement checks carry propagation and overflow.
func TestDiversifierIndexIncrement(t *testing.T) {
	t.Parallel()

	var d DiversifierIndex
	require.NoError(t, d.Increment())
	require.Equal(t, DiversifierIndexFromUint32(1), d)

	d = DiversifierIndexFromUint32(0xff)
	require.NoError(t, d.Increment())
	require.Equal(t, DiversifierIndexFromUint32(0x100), d)

	d = DiversifierIndexFromUint64(math.MaxUint64)
	require.NoError(t, d.Increment())
	require.Equal(t, [DiversifierIndexSize]byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0x01,
	}, d.Bytes())

	var full [DiversifierIndexSize]byte
	for i := range full {
		full[i] = 0xff
	}
	d = DiversifierIndexFromBytes(full)
	require.ErrorIs(t, d.Increment(), ErrDiversifierIndexOverflow)
	require.Equal(t, DiversifierIndex{}, d)
}
