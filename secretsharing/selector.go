package secretsharing

import (
	"sort"

	"golang.org/x/xerrors"

	"thresholdsecret/interpolation"
)

// sortShares returns a copy of the shares sorted by ascending x. Two shares
// with the same x are rejected.
func sortShares(shares []Share) ([]Share, error) {
	sorted := make([]Share, len(shares))
	copy(sorted, shares)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X.Cmp(sorted[j].X) < 0
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].X.Cmp(sorted[i].X) == 0 {
			return nil, xerrors.Errorf("share x = %s: %w", sorted[i].X, interpolation.ErrDuplicateAbscissa)
		}
	}
	return sorted, nil
}

// Select returns the k shares with the lowest x, in ascending order of x.
// Any k shares of a valid sharing give the same secret; the lowest ones are
// taken so that the result is reproducible. The input is not modified.
// Fails with ErrInsufficientShares unless len(shares) >= k >= 1.
func Select(shares []Share, k int) ([]Share, error) {
	if k < 1 || len(shares) < k {
		return nil, xerrors.Errorf("need %d shares, got %d: %w", k, len(shares), ErrInsufficientShares)
	}

	sorted, err := sortShares(shares)
	if err != nil {
		return nil, err
	}
	return sorted[:k], nil
}
