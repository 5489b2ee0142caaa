package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/kestrel/pkg/config"
	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kestrel.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `generator:
  kind: identity
  name_prefix: "id_"
  name_suffix: "_v1"
  features_in: [age, income]
log:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "identity", cfg.Generator.Kind)
	assert.Equal(t, "id_", cfg.Generator.NamePrefix)
	assert.Equal(t, "_v1", cfg.Generator.NameSuffix)
	assert.Equal(t, []string{"age", "income"}, cfg.Generator.FeaturesIn)
	assert.False(t, cfg.Generator.InferFromMetadata)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel())
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Generator.Kind, cfg.Generator.Kind)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel())
	assert.Empty(t, cfg.Generator.FeaturesIn)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "generator:\n  name_prefix: file_\n")
	t.Setenv("KESTREL_GENERATOR_NAME_PREFIX", "env_")
	t.Setenv("KESTREL_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env_", cfg.Generator.NamePrefix)
	assert.Equal(t, logger.LevelWarn, cfg.LogLevel())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad log level",
			content: "log:\n  level: loud\n",
			wantErr: "log.level",
		},
		{
			name:    "conflicting feature selection",
			content: "generator:\n  features_in: [a]\n  infer_from_metadata: true\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "empty kind",
			content: "generator:\n  kind: \"\"\n",
			wantErr: "generator.kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
