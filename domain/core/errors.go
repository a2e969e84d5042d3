package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Resolution errors
	ErrMissingTarget  = errors.New("no target specification found")
	ErrMissingWeights = errors.New("no weight vector found")

	// Validation errors
	ErrInvalidTargetFormat = errors.New("invalid target format")
	ErrInvalidTargetValues = errors.New("invalid target values")
	ErrDataValidation      = errors.New("data validation failed")
)

// Error constructors with context

// NewMissingTargetError reports a failed target lookup, carrying the name
// that was attempted so callers can see what the dataset pointed at.
func NewMissingTargetError(lookupName string) error {
	if lookupName == "" {
		return fmt.Errorf("%w: no target argument given and dataset carries no target association", ErrMissingTarget)
	}
	return fmt.Errorf("%w: no target argument given and association %q resolved to nothing", ErrMissingTarget, lookupName)
}

// NewMissingWeightsError reports that no weight column matched any candidate name.
func NewMissingWeightsError(candidates []string) error {
	return fmt.Errorf("%w: no explicit weights given and none of the candidate columns exist: %s",
		ErrMissingWeights, strings.Join(candidates, ", "))
}

// NewInvalidTargetFormatError reports an unrecognized target argument shape.
func NewInvalidTargetFormatError(got string) error {
	return fmt.Errorf("%w: expected a nested mapping or a flat (variable, level, proportion) table, got %s",
		ErrInvalidTargetFormat, got)
}

// NewInvalidTargetValuesError reports a malformed proportion distribution.
func NewInvalidTargetValuesError(variable string, reason string) error {
	return fmt.Errorf("%w: variable %q: %s", ErrInvalidTargetValues, variable, reason)
}

// NewDataValidationError reports a dataset that fails precondition checks.
func NewDataValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDataValidation, reason)
}

// Error checking helpers
func IsMissingTargetError(err error) bool {
	return errors.Is(err, ErrMissingTarget)
}

func IsMissingWeightsError(err error) bool {
	return errors.Is(err, ErrMissingWeights)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTargetFormat) ||
		errors.Is(err, ErrInvalidTargetValues) ||
		errors.Is(err, ErrDataValidation)
}
