package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/kestrel/pkg/generators"
	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
)

const trainCSV = `age,income,city,joined,target
34,52000.5,paris,2021-03-04,1
51,61000,lyon,2019-11-30,0
29,38000.25,nice,2022-01-15,1
`

type result struct {
	stdout string
	stderr string
	err    error
}

func newRoot() *cobra.Command {
	root := RootCmd()
	root.AddCommand(FitCmd(), TransformCmd(), InspectCmd(), VersionCmd())
	return root
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	defer output.SetWriter(nil)

	var stdout, stderr bytes.Buffer
	root := newRoot()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.csv"), []byte(trainCSV), 0644))
	return dir
}

func TestFit_WritesSnapshotAndTransformedTable(t *testing.T) {
	dir := setup(t)

	res := run(t, "", "fit", "train.csv", "--label", "target", "--prefix", "f_", "--transformed", "train.features.csv")
	require.NoError(t, res.err, res.stdout)

	assert.FileExists(t, filepath.Join(dir, "train.kestrel.yml"))
	assert.Contains(t, res.stdout, "4 features in, 4 features out")

	features, err := os.ReadFile(filepath.Join(dir, "train.features.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(features), "f_age,f_income,f_city,f_joined\n"), string(features))

	gen, err := generators.Load(filepath.Join(dir, "train.kestrel.yml"), generators.WithLogger(logger.NewSilentLogger()))
	require.NoError(t, err)
	assert.True(t, gen.IsFit())
	assert.Equal(t, []string{"age", "income", "city", "joined"}, gen.FeaturesIn())
}

func TestFit_FromMetadataDropsObjectAndDatetime(t *testing.T) {
	setup(t)

	res := run(t, "", "fit", "train.csv", "--label", "target", "--from-metadata", "--out", "numeric.kestrel.yml")
	require.NoError(t, res.err)

	gen, err := generators.Load("numeric.kestrel.yml", generators.WithLogger(logger.NewSilentLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "income"}, gen.FeaturesOut())
}

func TestFit_FeaturesFlag(t *testing.T) {
	setup(t)

	res := run(t, "", "fit", "train.csv", "--features", "income,age")
	require.NoError(t, res.err)

	gen, err := generators.Load("train.kestrel.yml", generators.WithLogger(logger.NewSilentLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"income", "age"}, gen.FeaturesOut())
}

func TestFit_UsesConfigFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kestrel.yml"), []byte("generator:\n  name_suffix: _cfg\n"), 0644))

	res := run(t, "", "fit", "train.csv", "--label", "target")
	require.NoError(t, res.err)

	gen, err := generators.Load("train.kestrel.yml", generators.WithLogger(logger.NewSilentLogger()))
	require.NoError(t, err)
	assert.Equal(t, "age_cfg", gen.FeaturesOut()[0])
}

func TestFit_RefusesOverwriteWhenDeclined(t *testing.T) {
	dir := setup(t)
	snapshot := filepath.Join(dir, "train.kestrel.yml")
	require.NoError(t, os.WriteFile(snapshot, []byte("keep me"), 0644))

	res := run(t, "n\n", "fit", "train.csv")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--force")

	content, _ := os.ReadFile(snapshot)
	assert.Equal(t, "keep me", string(content))
}

func TestFit_OverwritesWhenConfirmed(t *testing.T) {
	dir := setup(t)
	snapshot := filepath.Join(dir, "train.kestrel.yml")
	require.NoError(t, os.WriteFile(snapshot, []byte("old"), 0644))

	res := run(t, "y\n", "fit", "train.csv")
	require.NoError(t, res.err)

	content, _ := os.ReadFile(snapshot)
	assert.Contains(t, string(content), "apiVersion: kestrel/v1")
}

func TestFit_DryRun(t *testing.T) {
	dir := setup(t)

	res := run(t, "", "fit", "train.csv", "--dry-run", "--transformed", "out.csv")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[DRY RUN]")
	assert.NoFileExists(t, filepath.Join(dir, "train.kestrel.yml"))
	assert.NoFileExists(t, filepath.Join(dir, "out.csv"))
}

func TestFit_UnknownKind(t *testing.T) {
	setup(t)

	res := run(t, "", "fit", "train.csv", "--kind", "polynomial")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, generators.ErrUnknownStrategy)
}

func TestFit_MissingLabel(t *testing.T) {
	setup(t)

	res := run(t, "", "fit", "train.csv", "--label", "nope")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "label column")
}

func TestTransform_ReplaysFit(t *testing.T) {
	dir := setup(t)
	require.NoError(t, run(t, "", "fit", "train.csv", "--label", "target", "--suffix", "_x", "--transformed", "train.features.csv").err)

	res := run(t, "", "transform", "train.kestrel.yml", "train.csv")
	require.NoError(t, res.err)

	want, err := os.ReadFile(filepath.Join(dir, "train.features.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(want), res.stdout)
}

func TestTransform_ToFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, run(t, "", "fit", "train.csv", "--features", "age").err)

	res := run(t, "", "transform", "train.kestrel.yml", "train.csv", "--out", "test.csv")
	require.NoError(t, res.err)

	content, err := os.ReadFile(filepath.Join(dir, "test.csv"))
	require.NoError(t, err)
	assert.Equal(t, "age\n34\n51\n29\n", string(content))
}

func TestTransform_UnfitSnapshot(t *testing.T) {
	setup(t)
	require.NoError(t, generators.NewIdentity(generators.WithLogger(logger.NewSilentLogger())).Save("unfit.kestrel.yml"))

	res := run(t, "", "transform", "unfit.kestrel.yml", "train.csv")
	assert.ErrorIs(t, res.err, generators.ErrNotFit)
}

func TestInspect(t *testing.T) {
	setup(t)
	require.NoError(t, run(t, "", "fit", "train.csv", "--label", "target").err)

	res := run(t, "", "inspect", "train.kestrel.yml")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "identity generator (fit)")
	assert.Contains(t, res.stdout, "Raw types")
	assert.Contains(t, res.stdout, "datetime")
	assert.Contains(t, res.stdout, "floating point")
	assert.Contains(t, res.stderr, "processed features (raw types)")
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "kestrel v")
}
