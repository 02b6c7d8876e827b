package commands

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"thresholdsecret/commitment"
	"thresholdsecret/dealer"
	"thresholdsecret/marshalling"
	"thresholdsecret/secretsharing"
)

func splitCmd() *cobra.Command {
	var (
		secret          string
		n, k            int
		bases           []int
		out             string
		commitmentPath  string
		archive         string
		archiveRequired int
		archiveTotal    int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into n shares, any k of which recover it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := new(big.Int).SetString(secret, 10)
			if !ok {
				return xerrors.Errorf("invalid secret %q: expected a decimal integer", secret)
			}

			spec := secretsharing.ThresholdSpec{N: n, K: k}
			shares, poly, err := dealer.Split(s, spec, bases...)
			if err != nil {
				return err
			}
			f := marshalling.ShareFile{Spec: spec, Shares: shares}

			err = marshalling.WriteShareFile(out, f)
			if err != nil {
				return xerrors.Errorf("failed to write shares: %w", err)
			}
			logger.Info().Msgf("wrote %d shares to %s", len(shares), out)

			if commitmentPath != "" {
				commits := commitment.Commit(commitment.DefaultGroup(), poly.Coefficients)
				bs, err := marshalling.MarshalCommitment(commits)
				if err != nil {
					return err
				}
				err = os.WriteFile(commitmentPath, []byte(hex.EncodeToString(bs)+"\n"), 0o644)
				if err != nil {
					return xerrors.Errorf("failed to write commitment: %w", err)
				}
			}

			if archive != "" {
				err = writeArchive(archive, f, archiveRequired, archiveTotal)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Split secret into %d shares with threshold %d\n", n, k)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "secret to share, in base 10")
	cmd.Flags().IntVar(&n, "n", 0, "number of shares")
	cmd.Flags().IntVar(&k, "k", 0, "number of shares needed to recover the secret")
	cmd.Flags().IntSliceVar(&bases, "base", []int{10}, "bases used in turn to encode the share values")
	cmd.Flags().StringVarP(&out, "out", "o", "shares.json", "share file to write (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&commitmentPath, "commitment", "", "file to write the hex encoded commitment to")
	cmd.Flags().StringVar(&archive, "archive", "", "directory to also write an erasure coded copy of the shares to")
	cmd.Flags().IntVar(&archiveRequired, "archive-required", 3, "number of shard files needed to read the archive")
	cmd.Flags().IntVar(&archiveTotal, "archive-total", 7, "number of shard files in the archive")

	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("k")

	return cmd
}

func writeArchive(dir string, f marshalling.ShareFile, required, total int) error {
	shards, err := marshalling.MarshalArchive(f, required, total)
	if err != nil {
		return err
	}

	err = os.MkdirAll(dir, 0o700)
	if err != nil {
		return err
	}
	for i, shard := range shards {
		path := filepath.Join(dir, fmt.Sprintf("shard-%d.bin", i))
		err = os.WriteFile(path, shard, 0o600)
		if err != nil {
			return xerrors.Errorf("failed to write shard %d: %w", i, err)
		}
	}

	logger.Info().Msgf("wrote %d shards to %s", len(shards), dir)
	return nil
}
