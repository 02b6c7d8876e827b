package basedecoder

import (
	"math/big"

	"golang.org/x/xerrors"
)

const (
	// MinBase is the smallest supported numeric base
	MinBase = 2
	// MaxBase is the largest supported numeric base (0-9 then a-z)
	MaxBase = 36
)

var (
	// ErrInvalidBase is returned when the base is outside [MinBase, MaxBase]
	ErrInvalidBase = xerrors.New("invalid base")
	// ErrInvalidDigit is returned when a character is not a digit of the base
	ErrInvalidDigit = xerrors.New("invalid digit")
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// digitValue maps an alphanumeric character to its digit value, letters
// being case-insensitive. Returns -1 for any other character.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// Decode reads value as an unsigned number written in the given base and
// returns its value. The accumulation is done with arbitrary precision so
// there is no upper bound on the length of value.
func Decode(value string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, xerrors.Errorf("base %d not in [%d, %d]: %w", base, MinBase, MaxBase, ErrInvalidBase)
	}
	if len(value) == 0 {
		return nil, xerrors.Errorf("empty value: %w", ErrInvalidDigit)
	}

	b := big.NewInt(int64(base))
	result := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(value); i++ {
		d := digitValue(value[i])
		if d < 0 || d >= base {
			return nil, xerrors.Errorf("character %q at position %d in base %d: %w", value[i], i, base, ErrInvalidDigit)
		}
		result.Mul(result, b)
		result.Add(result, digit.SetInt64(int64(d)))
	}

	return result, nil
}

// Encode is the inverse of Decode for non-negative values. Letters are
// written in lower case.
func Encode(value *big.Int, base int) (string, error) {
	if base < MinBase || base > MaxBase {
		return "", xerrors.Errorf("base %d not in [%d, %d]: %w", base, MinBase, MaxBase, ErrInvalidBase)
	}
	if value.Sign() < 0 {
		return "", xerrors.Errorf("cannot encode negative value %s", value)
	}
	if value.Sign() == 0 {
		return "0", nil
	}

	b := big.NewInt(int64(base))
	q := new(big.Int).Set(value)
	r := new(big.Int)
	digits := make([]byte, 0)
	for q.Sign() > 0 {
		q.QuoRem(q, b, r)
		digits = append(digits, alphabet[r.Int64()])
	}

	// Digits were produced least significant first
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}
