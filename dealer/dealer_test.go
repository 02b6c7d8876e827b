package dealer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4/util/random"

	"thresholdsecret/basedecoder"
	"thresholdsecret/secretsharing"
)

func TestPolynomial_Eval(t *testing.T) {
	// y = x^2 + x + 2
	p := NewPolynomial(big.NewInt(2), big.NewInt(1), big.NewInt(1))
	require.Equal(t, 2, p.Degree())

	require.Equal(t, int64(2), p.Eval(big.NewInt(0)).Int64())
	require.Equal(t, int64(4), p.Eval(big.NewInt(1)).Int64())
	require.Equal(t, int64(8), p.Eval(big.NewInt(2)).Int64())
	require.Equal(t, int64(14), p.Eval(big.NewInt(3)).Int64())
	require.Equal(t, int64(4), p.Eval(big.NewInt(-2)).Int64())
}

func TestPolynomial_Shares(t *testing.T) {
	p := NewPolynomial(big.NewInt(2), big.NewInt(1), big.NewInt(1))

	shares, err := p.Shares(4, 2, 16)
	require.NoError(t, err)
	require.Len(t, shares, 4)

	expected := []secretsharing.Share{
		secretsharing.NewShare(1, 2, "100"),
		secretsharing.NewShare(2, 16, "8"),
		secretsharing.NewShare(3, 2, "1110"),
		secretsharing.NewShare(4, 16, "16"),
	}
	for i, s := range shares {
		require.Equal(t, 0, expected[i].X.Cmp(s.X))
		require.Equal(t, expected[i].Base, s.Base)
		require.Equal(t, expected[i].Value, s.Value)
	}

	_, err = p.Shares(2)
	require.ErrorIs(t, err, secretsharing.ErrInvalidThreshold)

	_, err = p.Shares(3, 40)
	require.ErrorIs(t, err, basedecoder.ErrInvalidBase)
}

func TestRandomPolynomial(t *testing.T) {
	secret := big.NewInt(123456789)
	p, err := RandomPolynomial(secret, 5, 64, random.New())
	require.NoError(t, err)
	require.Equal(t, 4, p.Degree())
	require.Equal(t, 0, secret.Cmp(p.Secret()))

	bound := new(big.Int).Lsh(big.NewInt(1), 64)
	for _, c := range p.Coefficients[1:] {
		require.True(t, c.Sign() >= 0)
		require.True(t, c.Cmp(bound) < 0)
	}

	_, err = RandomPolynomial(secret, 0, 64, nil)
	require.ErrorIs(t, err, secretsharing.ErrInvalidThreshold)

	_, err = RandomPolynomial(big.NewInt(-1), 2, 64, nil)
	require.Error(t, err)
}

func TestSplit_Recover(t *testing.T) {
	secret, ok := new(big.Int).SetString("79836264049851", 10)
	require.True(t, ok)
	spec := secretsharing.ThresholdSpec{N: 10, K: 7}

	shares, p, err := Split(secret, spec, 2, 6, 10, 15, 16, 36)
	require.NoError(t, err)
	require.Len(t, shares, spec.N)
	require.Equal(t, spec.K-1, p.Degree())

	recovered, err := secretsharing.Recover(spec, shares, secretsharing.WithStrict())
	require.NoError(t, err)
	require.Equal(t, 0, secret.Cmp(recovered))
}

func TestSplit_InvalidThreshold(t *testing.T) {
	_, _, err := Split(big.NewInt(1), secretsharing.ThresholdSpec{N: 2, K: 3})
	require.ErrorIs(t, err, secretsharing.ErrInvalidThreshold)
}
