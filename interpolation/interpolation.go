package interpolation

import (
	"math/big"

	"golang.org/x/xerrors"
)

var (
	// ErrNoPoints is returned when interpolating an empty sequence
	ErrNoPoints = xerrors.New("no points to interpolate")
	// ErrDuplicateAbscissa is returned when two points share the same x
	ErrDuplicateAbscissa = xerrors.New("duplicate abscissa")
	// ErrNonIntegerResult is returned when the interpolated value does not
	// reduce to a whole number and rounding was not requested
	ErrNonIntegerResult = xerrors.New("interpolation result is not an integer")
)

// Point is a decoded share, i.e. a point (x, y) of the polynomial
type Point struct {
	X *big.Int
	Y *big.Int
}

// NewPoint returns a point from two int64 coordinates
func NewPoint(x, y int64) Point {
	return Point{X: big.NewInt(x), Y: big.NewInt(y)}
}

func (p Point) String() string {
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}

type config struct {
	round bool
}

// Option changes how Interpolate turns the exact result into an integer
type Option func(*config)

// WithRounding makes Interpolate return the nearest integer, halves rounded
// away from zero, instead of failing with ErrNonIntegerResult.
func WithRounding() Option {
	return func(c *config) {
		c.round = true
	}
}

// checkAbscissas verifies that all x values are pairwise distinct
func checkAbscissas(points []Point) error {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		key := p.X.String()
		if _, ok := seen[key]; ok {
			return xerrors.Errorf("x = %s: %w", key, ErrDuplicateAbscissa)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// InterpolateAt evaluates at x the unique polynomial of degree len(points)-1
// going through all the given points. Every Lagrange term is kept as an exact
// fraction and the sum is reduced after each addition, so the returned value
// is exact.
//
//	f(x) = Σ_i y_i Π_{j≠i} (x - x_j) / (x_i - x_j)
func InterpolateAt(points []Point, x *big.Int) (*big.Rat, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	err := checkAbscissas(points)
	if err != nil {
		return nil, err
	}

	sum := new(big.Rat)
	term := new(big.Rat)
	diff := new(big.Int)
	for i, pi := range points {
		num := new(big.Int).Set(pi.Y)
		den := big.NewInt(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			num.Mul(num, diff.Sub(x, pj.X))
			den.Mul(den, diff.Sub(pi.X, pj.X))
		}
		// SetFrac normalizes the sign onto the numerator and reduces by the gcd
		term.SetFrac(num, den)
		sum.Add(sum, term)
	}

	return sum, nil
}

// Interpolate returns the constant term of the polynomial going through the
// given points, that is its value at x = 0. It fails with
// ErrNonIntegerResult if that value is not a whole number, unless
// WithRounding is given.
func Interpolate(points []Point, opts ...Option) (*big.Int, error) {
	conf := config{}
	for _, opt := range opts {
		opt(&conf)
	}

	value, err := InterpolateAt(points, new(big.Int))
	if err != nil {
		return nil, err
	}

	if value.IsInt() {
		return new(big.Int).Set(value.Num()), nil
	}
	if !conf.round {
		return nil, xerrors.Errorf("got %s: %w", value.RatString(), ErrNonIntegerResult)
	}
	return Round(value), nil
}

// Round returns the integer nearest to r, halves being rounded away from zero
func Round(r *big.Rat) *big.Int {
	num := new(big.Int).Abs(r.Num())
	den := r.Denom()

	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Lsh(m, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if r.Sign() < 0 {
		q.Neg(q)
	}
	return q
}
