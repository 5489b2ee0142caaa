package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/kestrel/pkg/generators"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
	"github.com/simonhull/firebird-suite/kestrel/pkg/types"
)

// InspectCmd creates the inspect command
func InspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SNAPSHOT",
		Short: "Summarize the features of a saved generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			gen, err := generators.Load(args[0], generators.WithLogger(log))
			if err != nil {
				return err
			}

			output.Info(fmt.Sprintf("%s generator (%s)", gen.Name(), gen.State()))
			if gen.NamePrefix() != "" || gen.NameSuffix() != "" {
				output.Step(fmt.Sprintf("prefix %q, suffix %q", gen.NamePrefix(), gen.NameSuffix()))
			}
			if in := gen.FeaturesIn(); len(in) > 0 {
				output.Step("features in: " + strings.Join(in, ", "))
			}

			if !gen.IsFit() {
				output.Step("not fit yet; run kestrel fit to produce output features")
				return nil
			}
			output.Step("features out: " + strings.Join(gen.FeaturesOut(), ", "))

			if err := gen.LogFeatureMetadataInfo(); err != nil {
				return err
			}

			summary, err := gen.MetadataSummary()
			if err != nil {
				return err
			}
			output.Counts("Special types", countRows(summary.Special))
			output.Counts("Raw types", countRows(summary.Raw))
			output.Counts("All types", countRows(summary.Full))
			return nil
		},
	}
}

// countRows annotates known raw types with their description.
func countRows(counts []generators.TagCount) []output.Count {
	rows := make([]output.Count, 0, len(counts))
	for _, c := range counts {
		note, _ := types.Describe(c.Tag)
		rows = append(rows, output.Count{Label: c.Tag, Value: c.Count, Note: note})
	}
	return rows
}
