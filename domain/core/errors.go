package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Resolution errors: references into the table that do not exist
	ErrResolution      = errors.New("resolution failed")
	ErrUnknownColumn   = fmt.Errorf("%w: unknown column", ErrResolution)
	ErrUnknownRowLabel = fmt.Errorf("%w: unknown row label", ErrResolution)
	ErrUnknownGroup    = fmt.Errorf("%w: unknown row group", ErrResolution)
	ErrColumnDropped   = fmt.Errorf("%w: column already consumed by a merge", ErrResolution)

	// Format errors: value/option incompatibilities during formatting or aggregation
	ErrFormat           = errors.New("format failed")
	ErrNonNumericColumn = fmt.Errorf("%w: aggregation over non-numeric column", ErrFormat)
	ErrInvalidOption    = fmt.Errorf("%w: invalid numeric option", ErrFormat)

	// Config errors: contradictory or missing call arguments
	ErrConfig = errors.New("invalid call configuration")
)

// Error constructors with context

func NewUnknownColumnError(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

func NewUnknownRowLabelError(label string) error {
	return fmt.Errorf("%w %q", ErrUnknownRowLabel, label)
}

func NewUnknownGroupError(group string) error {
	return fmt.Errorf("%w %q", ErrUnknownGroup, group)
}

func NewColumnDroppedError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnDropped, name)
}

func NewAggregationError(column, fn string) error {
	return fmt.Errorf("%w: column %q, function %q", ErrNonNumericColumn, column, fn)
}

func NewInvalidOptionError(option string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidOption, option, reason)
}

func NewConfigError(call string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfig, call, reason)
}

// Error checking helpers

func IsResolutionError(err error) bool {
	return errors.Is(err, ErrResolution)
}

func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}
