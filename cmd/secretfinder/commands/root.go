package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"thresholdsecret/logging"
)

var (
	logLevel string
	logger   zerolog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "secretfinder",
		Short:        "Threshold secret sharing over the integers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				logging.SetLevel(logging.ParseLevel(logLevel))
			}
			logger = logging.GetLogger(cmd.Name())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv(logging.EnvLogLevel),
		"error, warn, info, debug, trace or no (default from $"+logging.EnvLogLevel+")")

	root.AddCommand(recoverCmd(), splitCmd(), verifyCmd())
	return root
}

// Execute runs the command line with the process arguments
func Execute() error {
	return newRootCmd().Execute()
}
