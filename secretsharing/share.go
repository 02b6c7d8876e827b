package secretsharing

import (
	"math/big"

	"golang.org/x/xerrors"

	"thresholdsecret/basedecoder"
	"thresholdsecret/interpolation"
)

var (
	// ErrInvalidThreshold is returned for a threshold with k < 1 or n < k
	ErrInvalidThreshold = xerrors.New("invalid threshold")
	// ErrInsufficientShares is returned when fewer than k shares are given
	ErrInsufficientShares = xerrors.New("insufficient shares")
	// ErrInconsistentShare is returned by a strict recovery when a share does
	// not lie on the polynomial defined by the selected ones
	ErrInconsistentShare = xerrors.New("inconsistent share")
)

// Share is one encoded point of the polynomial. Its y coordinate is written
// in Value using the numeric base Base. X identifies the share.
type Share struct {
	X     *big.Int
	Base  int
	Value string
}

// NewShare returns a share with a small x
func NewShare(x int64, base int, value string) Share {
	return Share{X: big.NewInt(x), Base: base, Value: value}
}

// Point decodes the share value and returns the corresponding point
func (s Share) Point() (interpolation.Point, error) {
	y, err := basedecoder.Decode(s.Value, s.Base)
	if err != nil {
		return interpolation.Point{}, xerrors.Errorf("failed to decode share %s: %w", s.X, err)
	}
	return interpolation.Point{X: new(big.Int).Set(s.X), Y: y}, nil
}

// ThresholdSpec declares how many shares exist (N) and how many are needed
// to recover the secret (K)
type ThresholdSpec struct {
	N int
	K int
}

// Validate checks that 1 <= K <= N
func (t ThresholdSpec) Validate() error {
	if t.K < 1 {
		return xerrors.Errorf("k = %d: %w", t.K, ErrInvalidThreshold)
	}
	if t.N < t.K {
		return xerrors.Errorf("n = %d < k = %d: %w", t.N, t.K, ErrInvalidThreshold)
	}
	return nil
}
