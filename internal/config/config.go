// Package config loads the settings shared by the catalyst tools.
//
// Values come from, in order of precedence: environment variables with the
// CATALYST_ prefix, an optional YAML file, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/catalyst-network/catalyst-ffi-go/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. CATALYST_LOG_LEVEL.
const EnvPrefix = "CATALYST"

var (
	ErrConfigNil     = errors.New("config: nil configuration")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full configuration tree.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Signing    SigningConfig    `json:"signing" yaml:"signing" mapstructure:"signing"`
	RangeProof RangeProofConfig `json:"rangeproof" yaml:"rangeproof" mapstructure:"rangeproof"`
	Audit      AuditConfig      `json:"audit" yaml:"audit" mapstructure:"audit"`
}

// LogConfig mirrors logging.Options.
type LogConfig struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	Format     string `json:"format" yaml:"format" mapstructure:"format"`
	File       string `json:"file" yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days"`
}

// Options converts the section for logging.New.
func (c LogConfig) Options() logging.Options {
	return logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// SigningConfig holds the default domain-separation context.
type SigningConfig struct {
	Context string `json:"context" yaml:"context" mapstructure:"context"`
}

// RangeProofConfig holds the default proof width and transcript context.
type RangeProofConfig struct {
	Bits    int    `json:"bits" yaml:"bits" mapstructure:"bits"`
	Context string `json:"context" yaml:"context" mapstructure:"context"`
}

// AuditConfig bounds the nonce audit.
type AuditConfig struct {
	Workers  int `json:"workers" yaml:"workers" mapstructure:"workers"`
	MaxPairs int `json:"max_pairs" yaml:"max_pairs" mapstructure:"max_pairs"`
}

// Load reads configuration. path may name a YAML file; when empty, a
// catalyst.yaml in the working directory or in ~/.catalyst is used if
// present. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("catalyst")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".catalyst"))
		}
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
