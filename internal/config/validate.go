package config

import (
	"fmt"

	"github.com/thoreinstein/rig/internal/errors"
	"github.com/thoreinstein/rig/internal/logging"
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			errs = append(errs, fieldError("log_level", cfg.LogLevel))
		}
	}

	switch logging.Format(cfg.LogFormat) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fieldError("log_format", cfg.LogFormat))
	}

	switch cfg.Output {
	case "", OutputText, OutputJSON, OutputYAML, OutputTOML:
	default:
		errs = append(errs, fieldError("output", cfg.Output))
	}

	return errs
}

func fieldError(field, value string) error {
	return errors.Wrap(errors.ErrInvalidConfig, fmt.Sprintf("%s: unsupported value %q", field, value))
}
