package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.dedis.ch/kyber/v4"
	"golang.org/x/xerrors"

	"thresholdsecret/commitment"
	"thresholdsecret/marshalling"
	"thresholdsecret/secretsharing"
)

var defaultShareFiles = []string{"testcase1.json", "testcase2.json"}

// shardPattern matches the shard files written by split --archive
const shardPattern = "shard-*.bin"

func recoverCmd() *cobra.Command {
	var (
		strict         bool
		round          bool
		archive        string
		commitmentPath string
	)

	cmd := &cobra.Command{
		Use:   "recover [share files...]",
		Short: "Recover the secret of every share file",
		Long: "Recover the secret of every share file, using the k shares with the lowest x. " +
			"Without arguments, testcase1.json and testcase2.json are read.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sets := make([]secretsharing.ShareSet, 0, len(args)+1)

			if archive != "" {
				f, err := readArchive(archive)
				if err != nil {
					return err
				}
				sets = append(sets, secretsharing.ShareSet{Spec: f.Spec, Shares: f.Shares})
			}

			if len(args) == 0 && archive == "" {
				args = defaultShareFiles
			}
			for _, path := range args {
				f, err := marshalling.ReadShareFile(path)
				if err != nil {
					return err
				}
				logger.Debug().Msgf("read %d shares from %s", len(f.Shares), path)
				sets = append(sets, secretsharing.ShareSet{Spec: f.Spec, Shares: f.Shares})
			}

			opts := []secretsharing.RecoverOption{secretsharing.WithLogger(logger)}
			if strict {
				opts = append(opts, secretsharing.WithStrict())
			}
			if round {
				opts = append(opts, secretsharing.WithRounding())
			}

			results := secretsharing.RecoverAll(sets, opts...)
			for i, res := range results {
				if res.Err != nil {
					return xerrors.Errorf("failed to recover secret %d: %w", i+1, res.Err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Secret %d: %s\n", i+1, res.Secret)
			}

			if commitmentPath != "" {
				g := commitment.DefaultGroup()
				commits, err := readCommitment(commitmentPath)
				if err != nil {
					return err
				}
				for i, res := range results {
					if !commitment.VerifySecret(g, commits, res.Secret) {
						return xerrors.Errorf("secret %d: %w", i+1, commitment.ErrCommitmentMismatch)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Commitment verified")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "check that the shares not used lie on the same polynomial")
	cmd.Flags().BoolVar(&round, "round", false, "round a non integer secret instead of failing")
	cmd.Flags().StringVar(&archive, "archive", "", "directory of shard files written by split --archive")
	cmd.Flags().StringVar(&commitmentPath, "commitment", "", "file with the hex encoded commitment to check the secrets against")

	return cmd
}

func readArchive(dir string) (marshalling.ShareFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, shardPattern))
	if err != nil {
		return marshalling.ShareFile{}, err
	}

	shards := make([][]byte, 0, len(paths))
	for _, path := range paths {
		bs, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Msgf("skipping shard %s", path)
			continue
		}
		shards = append(shards, bs)
	}
	logger.Debug().Msgf("read %d shards from %s", len(shards), dir)

	return marshalling.UnmarshalArchive(shards)
}

func readCommitment(path string) ([]kyber.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read commitment: %w", err)
	}
	bs, err := hex.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, xerrors.Errorf("invalid commitment encoding: %w", err)
	}
	return marshalling.UnmarshalCommitment(bs, commitment.DefaultGroup())
}
