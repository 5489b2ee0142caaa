package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/kestrel/internal/persist"
	"github.com/simonhull/firebird-suite/kestrel/pkg/generators"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
)

// TransformCmd creates the transform command
func TransformCmd() *cobra.Command {
	var (
		outPath string
		label   string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "transform SNAPSHOT DATA.csv",
		Short: "Apply a fitted generator to new data",
		Long: `Transform loads a fitted snapshot and applies it to a CSV file. The output
has exactly the columns the generator produced at fit time. Without --out the
result is written to stdout.`,
		Example: `  kestrel transform model.kestrel.yml test.csv > test.features.csv
  kestrel transform model.kestrel.yml test.csv --out test.features.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			gen, err := generators.Load(args[0], generators.WithLogger(log))
			if err != nil {
				return err
			}
			if !gen.IsFit() {
				return fmt.Errorf("%s: %w", args[0], generators.ErrNotFit)
			}

			x, _, err := readTable(args[1], label)
			if err != nil {
				return err
			}

			out, err := gen.Transform(x)
			if err != nil {
				return err
			}

			if outPath == "" {
				return table.WriteCSV(cmd.OutOrStdout(), out)
			}

			op, err := csvOperation(outPath, out)
			if err != nil {
				return err
			}
			if force, err = resolveForce(cmd, force, outPath); err != nil {
				return err
			}
			if err := persist.Execute(cmd.Context(), []persist.Operation{op}, persist.ExecuteOptions{
				Force:  force,
				Writer: cmd.OutOrStdout(),
			}); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Transformed %d rows into %d features", out.Len(), out.Width()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the result to this CSV instead of stdout")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Label column to drop before transforming")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the output file without asking")

	return cmd
}
