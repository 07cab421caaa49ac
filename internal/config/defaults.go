package config

import (
	"runtime"

	"github.com/spf13/viper"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		RangeProof: RangeProofConfig{
			Bits: rangeproof.DefaultBitSize,
		},
		Audit: AuditConfig{
			Workers: runtime.GOMAXPROCS(0),
			// Pairwise affine checks grow quadratically with batch size.
			MaxPairs: 100_000,
		},
	}
}

// setDefaults registers every key so environment overrides are seen by
// Unmarshal even when no file sets them.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("signing.context", d.Signing.Context)
	v.SetDefault("rangeproof.bits", d.RangeProof.Bits)
	v.SetDefault("rangeproof.context", d.RangeProof.Context)
	v.SetDefault("audit.workers", d.Audit.Workers)
	v.SetDefault("audit.max_pairs", d.Audit.MaxPairs)
}
