package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"thresholdsecret/commitment"
	"thresholdsecret/interpolation"
	"thresholdsecret/marshalling"
)

func verifyCmd() *cobra.Command {
	var commitmentPath string

	cmd := &cobra.Command{
		Use:   "verify <share file>",
		Short: "Check every share of a file against a published commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := marshalling.ReadShareFile(args[0])
			if err != nil {
				return err
			}
			commits, err := readCommitment(commitmentPath)
			if err != nil {
				return err
			}

			points := make([]interpolation.Point, len(f.Shares))
			for i, s := range f.Shares {
				points[i], err = s.Point()
				if err != nil {
					return err
				}
			}

			err = commitment.CheckPoints(commitment.DefaultGroup(), commits, points)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "All %d shares match the commitment\n", len(points))
			return nil
		},
	}

	cmd.Flags().StringVar(&commitmentPath, "commitment", "", "file with the hex encoded commitment")
	_ = cmd.MarkFlagRequired("commitment")

	return cmd
}
