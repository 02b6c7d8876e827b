package secretsharing

import (
	"math/big"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"thresholdsecret/interpolation"
)

type recoverConfig struct {
	logger zerolog.Logger
	strict bool
	round  bool
}

// RecoverOption configures Recover and RecoverAll
type RecoverOption func(*recoverConfig)

// WithLogger makes the recovery log its progress on the given logger
func WithLogger(logger zerolog.Logger) RecoverOption {
	return func(c *recoverConfig) {
		c.logger = logger
	}
}

// WithStrict makes the recovery check that every share that was not
// selected lies on the recovered polynomial
func WithStrict() RecoverOption {
	return func(c *recoverConfig) {
		c.strict = true
	}
}

// WithRounding accepts a non integer secret and rounds it to the nearest
// integer
func WithRounding() RecoverOption {
	return func(c *recoverConfig) {
		c.round = true
	}
}

func toPoints(shares []Share) ([]interpolation.Point, error) {
	points := make([]interpolation.Point, len(shares))
	for i, s := range shares {
		p, err := s.Point()
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// Recover decodes the k shares with the lowest x and interpolates them to
// get the secret.
func Recover(spec ThresholdSpec, shares []Share, opts ...RecoverOption) (*big.Int, error) {
	conf := recoverConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&conf)
	}

	err := spec.Validate()
	if err != nil {
		return nil, err
	}
	if len(shares) < spec.N {
		conf.logger.Warn().Msgf("expected %d shares, got %d", spec.N, len(shares))
	}

	selected, err := Select(shares, spec.K)
	if err != nil {
		return nil, err
	}

	points, err := toPoints(selected)
	if err != nil {
		return nil, err
	}
	if e := conf.logger.Debug(); e.Enabled() {
		xs := make([]string, len(selected))
		for i, s := range selected {
			xs[i] = s.X.String()
		}
		e.Int("k", spec.K).Int("n", spec.N).Strs("x", xs).Msg("interpolating selected shares")
	}

	var interpOpts []interpolation.Option
	if conf.round {
		interpOpts = append(interpOpts, interpolation.WithRounding())
	}
	secret, err := interpolation.Interpolate(points, interpOpts...)
	if err != nil {
		return nil, err
	}

	if conf.strict {
		err = checkSurplus(points, shares, conf.logger)
		if err != nil {
			return nil, err
		}
	}

	conf.logger.Info().Msgf("recovered secret from %d shares", spec.K)
	return secret, nil
}

// checkSurplus evaluates the polynomial defined by points at the x of every
// share that was not used and compares it to the share value
func checkSurplus(points []interpolation.Point, shares []Share, logger zerolog.Logger) error {
	sorted, err := sortShares(shares)
	if err != nil {
		return err
	}

	for _, s := range sorted[len(points):] {
		p, err := s.Point()
		if err != nil {
			return err
		}
		expected, err := interpolation.InterpolateAt(points, p.X)
		if err != nil {
			return err
		}
		if expected.Cmp(new(big.Rat).SetInt(p.Y)) != 0 {
			return xerrors.Errorf("share %s should be %s, got %s: %w",
				p.X, expected.RatString(), p.Y, ErrInconsistentShare)
		}
		logger.Debug().Msgf("share %s is consistent", p.X)
	}
	return nil
}

// ShareSet is an independent collection of shares with its threshold
type ShareSet struct {
	Spec   ThresholdSpec
	Shares []Share
}

// Result is the outcome of recovering one ShareSet
type Result struct {
	Secret *big.Int
	Err    error
}

// RecoverAll recovers every share set concurrently. The results are in the
// same order as the sets.
func RecoverAll(sets []ShareSet, opts ...RecoverOption) []Result {
	results := make([]Result, len(sets))

	wg := sync.WaitGroup{}
	for i, set := range sets {
		wg.Add(1)
		go func(i int, set ShareSet) {
			defer wg.Done()
			secret, err := Recover(set.Spec, set.Shares, opts...)
			results[i] = Result{Secret: secret, Err: err}
		}(i, set)
	}
	wg.Wait()

	return results
}
