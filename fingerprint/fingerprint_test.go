package fingerprint

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	testFingerprintHex = "deff604c246710f7176dead02aa746f2fd8d5389f7072556" +
		"dcb555fdbe5e3ae3"

	testFingerprintStr = "zip32seedfp1mmlkqnpyvug0w9mdatgz4f6x7t7c65uf7urj" +
		"24kuk42lm0j78t3sne2h0z"
)

var testSeed = func() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}()

// TestVector checks the fingerprint of the published test seed, both in raw
// and text form.
func TestVector(t *testing.T) {
	t.Parallel()

	fp := FromSeed(testSeed).UnwrapOrFail(t)

	b := fp.Bytes()
	require.Equal(t, testFingerprintHex, hex.EncodeToString(b[:]))
	require.Equal(t, testFingerprintStr, fp.String())

	parsed, err := Parse(testFingerprintStr)
	require.NoError(t, err)
	require.True(t, fp.Equal(parsed))
}

// TestFromSeedLength asserts that seeds outside the supported bounds have no
// fingerprint.
func TestFromSeedLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seedLen int
		isSome  bool
	}{
		{0, false},
		{16, false},
		{31, false},
		{32, true},
		{64, true},
		{252, true},
		{253, false},
	}

	for _, test := range tests {
		fp := FromSeed(make([]byte, test.seedLen))
		require.Equal(t, test.isSome, fp.IsSome(), test.seedLen)
	}
}

// TestLengthIsBound asserts that the seed length is part of the hashed input,
// so a seed and its zero-extension have different fingerprints.
func TestLengthIsBound(t *testing.T) {
	t.Parallel()

	short := FromSeed(make([]byte, 32)).UnwrapOrFail(t)
	long := FromSeed(make([]byte, 33)).UnwrapOrFail(t)

	require.False(t, short.Equal(long))
}

// TestParseErrors asserts that each kind of malformed string maps to its own
// error.
func TestParseErrors(t *testing.T) {
	t.Parallel()

	encode := func(hrp string, payload []byte, bech32m bool) string {
		data, err := bech32.ConvertBits(payload, 8, 5, true)
		require.NoError(t, err)

		var s string
		if bech32m {
			s, err = bech32.EncodeM(hrp, data)
		} else {
			s, err = bech32.Encode(hrp, data)
		}
		require.NoError(t, err)

		return s
	}

	// Flip the last checksum character of the valid vector.
	badChecksum := testFingerprintStr[:len(testFingerprintStr)-1] + "q"

	tests := []struct {
		name          string
		input         string
		expectedError error
	}{
		{
			name:          "empty",
			input:         "",
			expectedError: ErrNotBech32m,
		},
		{
			name:          "bad checksum",
			input:         badChecksum,
			expectedError: ErrNotBech32m,
		},
		{
			name:          "bech32 checksum",
			input:         encode(HRP, make([]byte, Size), false),
			expectedError: ErrNotBech32m,
		},
		{
			name:          "wrong hrp",
			input:         encode("zip32seedfq", make([]byte, Size), true),
			expectedError: ErrNotSeedFingerprint,
		},
		{
			name:          "short payload",
			input:         encode(HRP, make([]byte, Size-1), true),
			expectedError: ErrInvalidLength,
		},
		{
			name:          "long payload",
			input:         encode(HRP, make([]byte, Size+1), true),
			expectedError: ErrInvalidLength,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.input)
			require.ErrorIs(t, err, test.expectedError)
		})
	}
}

// TestParseIgnoresPaddingBits asserts that the padding bits in the last
// group of the payload are dropped rather than rejected.
func TestParseIgnoresPaddingBits(t *testing.T) {
	t.Parallel()

	fp := FromSeed(testSeed).UnwrapOrFail(t)
	b := fp.Bytes()

	data, err := bech32.ConvertBits(b[:], 8, 5, true)
	require.NoError(t, err)
	require.Len(t, data, 52)

	// 52 groups carry 260 bits, the low 4 bits of the last one are padding.
	data[len(data)-1] |= 0x0f

	s, err := bech32.EncodeM(HRP, data)
	require.NoError(t, err)
	require.NotEqual(t, testFingerprintStr, s)

	parsed, err := Parse(s)
	require.NoError(t, err)
	require.True(t, fp.Equal(parsed))
	require.Equal(t, testFingerprintStr, parsed.String())

	// One group more or less changes the number of whole bytes.
	for _, n := range []int{len(data) - 1, len(data) + 1} {
		groups := make([]byte, n)
		copy(groups, data)

		s, err := bech32.EncodeM(HRP, groups)
		require.NoError(t, err)

		_, err = Parse(s)
		require.ErrorIs(t, err, ErrInvalidLength, "%d groups", n)
	}
}

// TestParseUppercase asserts that the all-uppercase form of a fingerprint is
// accepted, as bech32 requires.
func TestParseUppercase(t *testing.T) {
	t.Parallel()

	fp, err := Parse(strings.ToUpper(testFingerprintStr))
	require.NoError(t, err)
	require.Equal(t, testFingerprintStr, fp.String())
}

// TestTextRoundTrip asserts that any fingerprint survives its text encoding.
func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var b [Size]byte
		copy(b[:], rapid.SliceOfN(rapid.Byte(), Size, Size).Draw(t, "fp"))
		fp := FromBytes(b)

		parsed, err := Parse(fp.String())
		require.NoError(t, err)
		require.Equal(t, b, parsed.Bytes())
	})
}

// TestJSON asserts that fingerprints embed in JSON documents as strings.
func TestJSON(t *testing.T) {
	t.Parallel()

	type doc struct {
		Fingerprint SeedFingerprint `json:"fingerprint"`
	}

	fp := FromSeed(testSeed).UnwrapOrFail(t)

	encoded, err := json.Marshal(doc{Fingerprint: fp})
	require.NoError(t, err)
	require.JSONEq(
		t, `{"fingerprint":"`+testFingerprintStr+`"}`, string(encoded),
	)

	var decoded doc
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.True(t, fp.Equal(decoded.Fingerprint))

	err = json.Unmarshal([]byte(`{"fingerprint":"nope"}`), &decoded)
	require.ErrorIs(t, err, ErrNotBech32m)
}

// TestGoString checks the Go syntax rendering of a fingerprint.
func TestGoString(t *testing.T) {
	t.Parallel()

	var b [Size]byte
	b[0] = 0xde
	s := FromBytes(b).GoString()

	require.True(t, strings.HasPrefix(
		s, "fingerprint.FromBytes([32]uint8{0xde, 0x0,",
	))
}

// FuzzParse asserts that Parse never panics, and that anything it accepts
// survives a round trip through its canonical text form.
func FuzzParse(f *testing.F) {
	f.Add(testFingerprintStr)
	f.Add(strings.ToUpper(testFingerprintStr))
	f.Add("zip32seedfp1")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		fp, err := Parse(s)
		if err != nil {
			return
		}

		reparsed, err := Parse(fp.String())
		require.NoError(t, err)
		require.True(t, fp.Equal(reparsed))
	})
}
