package dealer

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v4/util/random"
	"golang.org/x/xerrors"

	"thresholdsecret/basedecoder"
	"thresholdsecret/secretsharing"
)

// DefaultCoefficientBits is the size of the random coefficients when none is
// given
const DefaultCoefficientBits = 256

// Polynomial is an integer polynomial. Coefficients[0] is the constant term,
// which is the secret.
type Polynomial struct {
	Coefficients []*big.Int
}

// NewPolynomial returns a polynomial with the given coefficients, constant
// term first
func NewPolynomial(coeffs ...*big.Int) *Polynomial {
	return &Polynomial{Coefficients: coeffs}
}

// RandomPolynomial returns a polynomial of degree k-1 whose constant term is
// the secret. The other coefficients are picked uniformly in [0, 2^bits)
// from the given stream, or from crypto/rand if stream is nil.
func RandomPolynomial(secret *big.Int, k int, bits uint, stream cipher.Stream) (*Polynomial, error) {
	if k < 1 {
		return nil, xerrors.Errorf("k = %d: %w", k, secretsharing.ErrInvalidThreshold)
	}
	if secret.Sign() < 0 {
		return nil, xerrors.Errorf("cannot share negative secret %s", secret)
	}
	if stream == nil {
		stream = random.New()
	}
	if bits == 0 {
		bits = DefaultCoefficientBits
	}

	bound := new(big.Int).Lsh(big.NewInt(1), bits)
	coeffs := make([]*big.Int, k)
	coeffs[0] = new(big.Int).Set(secret)
	for i := 1; i < k; i++ {
		coeffs[i] = random.Int(bound, stream)
	}

	return NewPolynomial(coeffs...), nil
}

// Degree returns the degree of the polynomial
func (p *Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

// Secret returns the constant term
func (p *Polynomial) Secret() *big.Int {
	return new(big.Int).Set(p.Coefficients[0])
}

// Eval evaluates the polynomial at x using Horner's rule
func (p *Polynomial) Eval(x *big.Int) *big.Int {
	res := new(big.Int)
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		res.Mul(res, x)
		res.Add(res, p.Coefficients[i])
	}
	return res
}

// Shares evaluates the polynomial at x = 1..n and encodes every y in a base
// taken in turn from bases. All bases are used in base 10 if none is given.
func (p *Polynomial) Shares(n int, bases ...int) ([]secretsharing.Share, error) {
	if n < len(p.Coefficients) {
		return nil, xerrors.Errorf("n = %d < k = %d: %w", n, len(p.Coefficients), secretsharing.ErrInvalidThreshold)
	}
	if len(bases) == 0 {
		bases = []int{10}
	}

	shares := make([]secretsharing.Share, n)
	for i := 1; i <= n; i++ {
		x := big.NewInt(int64(i))
		base := bases[(i-1)%len(bases)]

		value, err := basedecoder.Encode(p.Eval(x), base)
		if err != nil {
			return nil, xerrors.Errorf("failed to encode share %d: %w", i, err)
		}
		shares[i-1] = secretsharing.Share{X: x, Base: base, Value: value}
	}

	return shares, nil
}

// Split shares secret with a random polynomial so that any k of the n
// returned shares recover it. It also returns the polynomial, which the
// caller can commit to.
func Split(secret *big.Int, spec secretsharing.ThresholdSpec, bases ...int) ([]secretsharing.Share, *Polynomial, error) {
	err := spec.Validate()
	if err != nil {
		return nil, nil, err
	}

	p, err := RandomPolynomial(secret, spec.K, DefaultCoefficientBits, nil)
	if err != nil {
		return nil, nil, err
	}

	shares, err := p.Shares(spec.N, bases...)
	if err != nil {
		return nil, nil, err
	}
	return shares, p, nil
}
