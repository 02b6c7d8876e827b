package commitment

import (
	"math/big"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/group/edwards25519"
	"golang.org/x/xerrors"

	"thresholdsecret/interpolation"
)

// ErrCommitmentMismatch is returned when a value does not match the
// published commitment
var ErrCommitmentMismatch = xerrors.New("commitment mismatch")

// DefaultGroup returns the group used by the command line tool
func DefaultGroup() kyber.Group {
	return edwards25519.NewBlakeSHA256Ed25519()
}

// scalarFromInt reduces v modulo the group order. It is built byte by byte
// so that it does not depend on the endianness of the scalar encoding.
func scalarFromInt(g kyber.Group, v *big.Int) kyber.Scalar {
	s := g.Scalar().Zero()
	radix := g.Scalar().SetInt64(256)
	digit := g.Scalar()
	for _, b := range new(big.Int).Abs(v).Bytes() {
		s.Mul(s, radix)
		s.Add(s, digit.SetInt64(int64(b)))
	}
	if v.Sign() < 0 {
		s.Neg(s)
	}
	return s
}

// Commit returns g^a_i for every coefficient a_i of an integer polynomial,
// constant term first. Commitments are computed modulo the group order, so
// they stay valid for integer polynomials of any size.
func Commit(g kyber.Group, coeffs []*big.Int) []kyber.Point {
	commits := make([]kyber.Point, len(coeffs))
	for i, c := range coeffs {
		commits[i] = g.Point().Mul(scalarFromInt(g, c), nil)
	}
	return commits
}

// VerifyShare checks that g^y = Π C_j^(x^j)
func VerifyShare(g kyber.Group, commits []kyber.Point, p interpolation.Point) bool {
	// Compute Π C_j^(x^j) with Horner's rule
	x := scalarFromInt(g, p.X)
	v := g.Point().Null()
	for j := len(commits) - 1; j >= 0; j-- {
		v.Mul(x, v)
		v.Add(v, commits[j])
	}

	gy := g.Point().Mul(scalarFromInt(g, p.Y), nil)
	return v.Equal(gy)
}

// VerifySecret checks that g^secret is the commitment of the constant term
func VerifySecret(g kyber.Group, commits []kyber.Point, secret *big.Int) bool {
	if len(commits) == 0 {
		return false
	}
	gs := g.Point().Mul(scalarFromInt(g, secret), nil)
	return gs.Equal(commits[0])
}

// CheckPoints verifies every point against the commitments and returns an
// error naming the first one that does not match
func CheckPoints(g kyber.Group, commits []kyber.Point, points []interpolation.Point) error {
	for _, p := range points {
		if !VerifyShare(g, commits, p) {
			return xerrors.Errorf("share %s: %w", p.X, ErrCommitmentMismatch)
		}
	}
	return nil
}
