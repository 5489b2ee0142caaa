package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/kestrel/internal/persist"
	"github.com/simonhull/firebird-suite/kestrel/pkg/config"
	"github.com/simonhull/firebird-suite/kestrel/pkg/generators"
	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
)

// FitCmd creates the fit command
func FitCmd() *cobra.Command {
	var (
		label        string
		snapshotPath string
		transformed  string
		kind         string
		prefix       string
		suffix       string
		features     []string
		fromMetadata bool
		force        bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "fit DATA.csv",
		Short: "Fit a feature generator and save its snapshot",
		Long: `Fit reads training data from a CSV file, fits a feature generator on it and
writes the fitted snapshot. With --transformed the transformed training table
is written as well; both files are written together or not at all.

Flags override the values from kestrel.yml.`,
		Example: `  kestrel fit train.csv --label target
  kestrel fit train.csv --label target --prefix id_ --transformed train.features.csv
  kestrel fit train.csv --from-metadata --out models/numeric.kestrel.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			gc := cfg.Generator
			flags := cmd.Flags()
			if flags.Changed("kind") {
				gc.Kind = kind
			}
			if flags.Changed("prefix") {
				gc.NamePrefix = prefix
			}
			if flags.Changed("suffix") {
				gc.NameSuffix = suffix
			}
			if flags.Changed("features") {
				gc.FeaturesIn = features
				gc.InferFromMetadata = false
			}
			if flags.Changed("from-metadata") {
				gc.InferFromMetadata = fromMetadata
				if fromMetadata {
					gc.FeaturesIn = nil
				}
			}

			gen, err := buildGenerator(gc, log)
			if err != nil {
				return err
			}

			dataPath := args[0]
			x, y, err := readTable(dataPath, label)
			if err != nil {
				return err
			}
			output.Verbose(fmt.Sprintf("Read %d rows x %d columns from %s", x.Len(), x.Width(), dataPath))

			var out *table.Table
			err = output.RunWithSpinner(fmt.Sprintf("Fitting %s generator", gen.Name()), func() error {
				var ferr error
				out, ferr = gen.FitTransform(x, y)
				return ferr
			})
			if err != nil {
				return err
			}

			if snapshotPath == "" {
				snapshotPath = defaultSnapshotPath(dataPath)
			}
			snapOp, err := gen.SaveOperation(snapshotPath)
			if err != nil {
				return err
			}
			ops := []persist.Operation{snapOp}
			targets := []string{snapshotPath}
			if transformed != "" {
				csvOp, err := csvOperation(transformed, out)
				if err != nil {
					return err
				}
				ops = append(ops, csvOp)
				targets = append(targets, transformed)
			}

			if !dryRun {
				if force, err = resolveForce(cmd, force, targets...); err != nil {
					return err
				}
			}

			if err := persist.Execute(cmd.Context(), ops, persist.ExecuteOptions{
				DryRun: dryRun,
				Force:  force || dryRun,
				Writer: cmd.OutOrStdout(),
			}); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("%d features in, %d features out", len(gen.FeaturesIn()), len(gen.FeaturesOut())))
			if gen.IsUpdatedName() {
				output.Step(fmt.Sprintf("Renamed with prefix %q, suffix %q", gen.NamePrefix(), gen.NameSuffix()))
			}
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("kestrel inspect %s", snapshotPath))
			output.Step(fmt.Sprintf("kestrel transform %s DATA.csv", snapshotPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label column to split off before fitting")
	cmd.Flags().StringVarP(&snapshotPath, "out", "o", "", "Snapshot path (default DATA.kestrel.yml)")
	cmd.Flags().StringVar(&transformed, "transformed", "", "Also write the transformed training table to this CSV")
	cmd.Flags().StringVar(&kind, "kind", "", "Generator kind (default from config: identity)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for output feature names")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Suffix for output feature names")
	cmd.Flags().StringSliceVar(&features, "features", nil, "Input features to use (default all columns)")
	cmd.Flags().BoolVar(&fromMetadata, "from-metadata", false, "Select input features by raw type (drops object and datetime columns)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fit but only report the files that would be written")
	cmd.MarkFlagsMutuallyExclusive("features", "from-metadata")

	return cmd
}

// buildGenerator turns generator settings into an unfit generator.
func buildGenerator(gc config.GeneratorConfig, log logger.Logger) (*generators.Generator, error) {
	strategy, err := generators.LookupStrategy(gc.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, generators.Strategies())
	}

	opts := []generators.Option{
		generators.WithLogger(log),
		generators.WithNamePrefix(gc.NamePrefix),
		generators.WithNameSuffix(gc.NameSuffix),
	}
	if len(gc.FeaturesIn) > 0 {
		opts = append(opts, generators.WithFeaturesIn(gc.FeaturesIn...))
	}
	if gc.InferFromMetadata {
		opts = append(opts, generators.WithFeaturesInference(generators.IdentityFeaturesFromMetadata))
	}

	return generators.New(strategy, opts...), nil
}
