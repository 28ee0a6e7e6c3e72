package domain

import (
	"github.com/cockroachdb/errors"
)

func WrapConfigurationError(format string, args ...interface{}) error {
	return errors.WithHint(
		errors.Wrapf(ErrConfiguration, format, args...),
		"valid hardware tiers: CPU, GPU, ASIC; valid targets: average, worst",
	)
}

func WrapInvalidInput(format string, args ...interface{}) error {
	return errors.WithHint(errors.Wrapf(ErrInvalidInput, format, args...), "provide a non-empty password")
}
