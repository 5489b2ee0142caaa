package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/kestrel/internal/persist"
	"github.com/simonhull/firebird-suite/kestrel/pkg/input"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
)

// readTable loads a CSV file and optionally splits off the label column.
func readTable(path, label string) (*table.Table, table.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if label == "" {
		return t, nil, nil
	}
	if !t.Has(label) {
		return nil, nil, fmt.Errorf("label column %q not found in %s", label, path)
	}
	return t.Pop(label)
}

// csvOperation renders t as CSV into a file write operation.
func csvOperation(path string, t *table.Table) (*persist.WriteFileOp, error) {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return &persist.WriteFileOp{Path: path, Content: buf.Bytes(), Mode: 0644}, nil
}

// defaultSnapshotPath derives model.kestrel.yml from data/model.csv.
func defaultSnapshotPath(dataPath string) string {
	base := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	return filepath.Join(filepath.Dir(dataPath), base+".kestrel.yml")
}

// resolveForce decides whether existing targets may be overwritten. Without
// --force the user is asked once for all existing files.
func resolveForce(cmd *cobra.Command, force bool, paths ...string) (bool, error) {
	if force {
		return true, nil
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return false, nil
	}

	prompter := input.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if prompter.Confirm(fmt.Sprintf("Overwrite %s?", strings.Join(existing, ", ")), false) {
		return true, nil
	}
	return false, fmt.Errorf("refusing to overwrite %s (use --force)", strings.Join(existing, ", "))
}
