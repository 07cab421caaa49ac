package config

import (
	"fmt"

	"github.com/catalyst-network/catalyst-ffi-go/internal/logging"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// Validate returns the first invalid setting found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, cfg.Log.Format)
	}
	if len(cfg.Signing.Context) > stdsig.ContextMaxLength {
		return fmt.Errorf("%w: signing.context longer than %d bytes", ErrInvalidConfig, stdsig.ContextMaxLength)
	}
	switch cfg.RangeProof.Bits {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("%w: rangeproof.bits must be 8, 16, 32 or 64, got %d", ErrInvalidConfig, cfg.RangeProof.Bits)
	}
	if len(cfg.RangeProof.Context) > rangeproof.ContextMaxLength {
		return fmt.Errorf("%w: rangeproof.context longer than %d bytes", ErrInvalidConfig, rangeproof.ContextMaxLength)
	}
	if cfg.Audit.Workers < 1 {
		return fmt.Errorf("%w: audit.workers must be positive, got %d", ErrInvalidConfig, cfg.Audit.Workers)
	}
	if cfg.Audit.MaxPairs < 1 {
		return fmt.Errorf("%w: audit.max_pairs must be positive, got %d", ErrInvalidConfig, cfg.Audit.MaxPairs)
	}
	return nil
}
