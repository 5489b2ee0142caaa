// Package config loads kestrel.yml.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "kestrel.yml"

// EnvPrefix prefixes environment overrides, e.g. KESTREL_GENERATOR_NAME_PREFIX.
const EnvPrefix = "KESTREL"

// Config represents kestrel.yml
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Log       LogConfig       `mapstructure:"log"`
}

// GeneratorConfig configures the generator built by `kestrel fit`.
type GeneratorConfig struct {
	Kind              string   `mapstructure:"kind"`
	NamePrefix        string   `mapstructure:"name_prefix"`
	NameSuffix        string   `mapstructure:"name_suffix"`
	FeaturesIn        []string `mapstructure:"features_in"`
	InferFromMetadata bool     `mapstructure:"infer_from_metadata"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{Kind: "identity"},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads configuration from path, or from ./kestrel.yml when path is empty.
// A missing ./kestrel.yml is not an error; a missing explicit path is.
// Environment variables with the KESTREL_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("generator.kind", defaults.Generator.Kind)
	v.SetDefault("generator.name_prefix", "")
	v.SetDefault("generator.name_suffix", "")
	v.SetDefault("generator.features_in", []string{})
	v.SetDefault("generator.infer_from_metadata", false)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Generator.Kind) == "" {
		return fmt.Errorf("generator.kind must not be empty")
	}
	if len(c.Generator.FeaturesIn) > 0 && c.Generator.InferFromMetadata {
		return fmt.Errorf("generator.features_in and generator.infer_from_metadata are mutually exclusive")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
