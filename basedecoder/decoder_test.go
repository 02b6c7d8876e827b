package basedecoder

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_KnownValues(t *testing.T) {
	cases := []struct {
		value    string
		base     int
		expected int64
	}{
		{"ff", 16, 255},
		{"FF", 16, 255},
		{"777", 8, 511},
		{"1010", 2, 10},
		{"0", 2, 0},
		{"z", 36, 35},
		{"Zz", 36, 35*36 + 35},
		{"4", 10, 4},
		{"213", 4, 39},
	}

	for _, c := range cases {
		decoded, err := Decode(c.value, c.base)
		require.NoError(t, err)
		require.Equal(t, 0, decoded.Cmp(big.NewInt(c.expected)), "decode(%q, %d) = %s", c.value, c.base, decoded)
	}
}

// TestDecode_Large checks that values larger than 64 bits are decoded
// without truncation
func TestDecode_Large(t *testing.T) {
	value := strings.Repeat("f", 64)
	decoded, err := Decode(value, 16)
	require.NoError(t, err)

	expected := new(big.Int).Lsh(big.NewInt(1), 256)
	expected.Sub(expected, big.NewInt(1))
	require.Equal(t, 0, expected.Cmp(decoded))
}

func TestDecode_InvalidBase(t *testing.T) {
	for _, base := range []int{-1, 0, 1, 37, 100} {
		_, err := Decode("1", base)
		require.ErrorIs(t, err, ErrInvalidBase)
	}
}

func TestDecode_InvalidDigit(t *testing.T) {
	cases := []struct {
		value string
		base  int
	}{
		{"2", 2},
		{"8", 8},
		{"g", 16},
		{"12-3", 10},
		{" 1", 10},
		{"1.5", 10},
		{"é", 36},
		{"", 10},
	}

	for _, c := range cases {
		_, err := Decode(c.value, c.base)
		require.ErrorIs(t, err, ErrInvalidDigit, "decode(%q, %d)", c.value, c.base)
	}
}

// TestEncode_Inverse checks that encoding then decoding gives back the
// original value for every base
func TestEncode_Inverse(t *testing.T) {
	value, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	for base := MinBase; base <= MaxBase; base++ {
		encoded, err := Encode(value, base)
		require.NoError(t, err)

		decoded, err := Decode(encoded, base)
		require.NoError(t, err)
		require.Equal(t, 0, value.Cmp(decoded))
	}

	encoded, err := Encode(big.NewInt(255), 16)
	require.NoError(t, err)
	require.Equal(t, "ff", encoded)

	encoded, err = Encode(new(big.Int), 7)
	require.NoError(t, err)
	require.Equal(t, "0", encoded)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(big.NewInt(1), 37)
	require.ErrorIs(t, err, ErrInvalidBase)

	_, err = Encode(big.NewInt(-1), 10)
	require.Error(t, err)
}
