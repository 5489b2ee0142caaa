package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/kestrel"
	"github.com/simonhull/firebird-suite/kestrel/pkg/config"
	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
)

// RootCmd creates and returns the root command for the kestrel CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kestrel",
		Short: "Fit feature generators on tabular data and replay them",
		Long: `Kestrel fits feature generators on CSV training data, saves the fitted
state as a snapshot, and replays it on new data so training and inference
see the same columns.

  kestrel fit train.csv --label target --out model.kestrel.yml
  kestrel transform model.kestrel.yml test.csv --out test.features.csv
  kestrel inspect model.kestrel.yml`,
		Version:       kestrel.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./kestrel.yml)")

	return cmd
}

// VersionCmd prints the version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kestrel v%s\n", kestrel.Version)
		},
	}
}

// loadSettings reads the config selected by --config and builds the logger
// that generators and commands share. --verbose forces debug logging.
func loadSettings(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.LevelDebug
	}

	log := logger.NewLogger(level, cmd.ErrOrStderr())
	output.Verbose(fmt.Sprintf("Config: kind=%s log=%s", cfg.Generator.Kind, level))
	return cfg, log, nil
}
