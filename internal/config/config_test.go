package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalyst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 64, cfg.RangeProof.Bits)
		assert.Positive(t, cfg.Audit.Workers)
	})

	t.Run("reads a yaml file", func(t *testing.T) {
		path := writeConfig(t, `
log:
  level: debug
  format: json
signing:
  context: payments
rangeproof:
  bits: 32
  context: invoices
audit:
  workers: 2
  max_pairs: 50
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Options().Format)
		assert.Equal(t, "payments", cfg.Signing.Context)
		assert.Equal(t, 32, cfg.RangeProof.Bits)
		assert.Equal(t, "invoices", cfg.RangeProof.Context)
		assert.Equal(t, 2, cfg.Audit.Workers)
		assert.Equal(t, 50, cfg.Audit.MaxPairs)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "log:\n  level: debug\n")
		t.Setenv("CATALYST_LOG_LEVEL", "warn")
		t.Setenv("CATALYST_SIGNING_CONTEXT", "from-env")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "from-env", cfg.Signing.Context)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, "rangeproof:\n  bits: 12\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"long signing context", func(c *Config) { c.Signing.Context = strings.Repeat("x", 256) }},
		{"long proof context", func(c *Config) { c.RangeProof.Context = strings.Repeat("x", 256) }},
		{"bad bits", func(c *Config) { c.RangeProof.Bits = 0 }},
		{"no workers", func(c *Config) { c.Audit.Workers = 0 }},
		{"no pairs", func(c *Config) { c.Audit.MaxPairs = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
		})
	}

	assert.ErrorIs(t, Validate(nil), ErrConfigNil)
}
