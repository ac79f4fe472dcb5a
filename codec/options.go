package codec

import (
	"fmt"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/internal/options"
)

// EncoderConfig holds the effective encoder settings after option application.
type EncoderConfig struct {
	// AnchorInterval is the row interval at which tables force a fully
	// explicit anchor row.
	AnchorInterval int

	// Limits bound the encoder's own recursion depth checks.
	Limits format.Limits
}

// EncoderOption configures an EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// NewEncoderConfig creates an encoder configuration with defaults applied,
// then folds in the supplied options.
func NewEncoderConfig(opts ...EncoderOption) (*EncoderConfig, error) {
	cfg := &EncoderConfig{
		AnchorInterval: format.DefaultAnchorInterval,
		Limits:         format.DefaultLimits(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithAnchorInterval sets the anchor interval for table encoding.
func WithAnchorInterval(interval int) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if interval < 1 {
			return fmt.Errorf("anchor interval must be positive, got %d", interval)
		}
		cfg.AnchorInterval = interval

		return nil
	})
}

// WithEncoderLimits overrides the default limits for one encoder.
func WithEncoderLimits(limits format.Limits) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.Limits = limits
	})
}

// DecoderConfig holds the effective decoder settings after option application.
type DecoderConfig struct {
	// Mode selects strict or lenient handling of structural mismatches.
	Mode format.DecodeMode

	// Limits are the security ceilings enforced during parse.
	Limits format.Limits
}

// DecoderOption configures a DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// NewDecoderConfig creates a decoder configuration with defaults applied,
// then folds in the supplied options.
func NewDecoderConfig(opts ...DecoderOption) (*DecoderConfig, error) {
	cfg := &DecoderConfig{
		Mode:   format.ModeStrict,
		Limits: format.DefaultLimits(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithMode sets the structural validation mode.
func WithMode(mode format.DecodeMode) DecoderOption {
	return options.New(func(cfg *DecoderConfig) error {
		if mode != format.ModeStrict && mode != format.ModeLenient {
			return fmt.Errorf("invalid decode mode: %d", mode)
		}
		cfg.Mode = mode

		return nil
	})
}

// WithStrictMode aborts decode on row or field count mismatches.
func WithStrictMode() DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		cfg.Mode = format.ModeStrict
	})
}

// WithLenientMode tolerates row and field count mismatches by truncating or
// null-filling. Security ceilings stay fatal.
func WithLenientMode() DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		cfg.Mode = format.ModeLenient
	})
}

// WithLimits overrides the default security limits for one decoder.
func WithLimits(limits format.Limits) DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		cfg.Limits = limits
	})
}
