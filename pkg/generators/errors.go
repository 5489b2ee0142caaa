package generators

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyFit is matched by errors from FitTransform on a fit generator.
	ErrAlreadyFit = errors.New("feature generator is already fit")

	// ErrNotFit is matched by errors from operations that need a fit generator.
	ErrNotFit = errors.New("feature generator is not fit")

	// ErrSpecialGroupMismatch is returned when a strategy reports special type
	// groups naming features that are not among its output columns.
	ErrSpecialGroupMismatch = errors.New("special type group names a feature missing from the output")

	// ErrUnknownStrategy is returned when no strategy is registered under a name.
	ErrUnknownStrategy = errors.New("unknown generator strategy")
)

// AlreadyFitError is returned when FitTransform is called a second time.
type AlreadyFitError struct {
	Generator string
}

func (e *AlreadyFitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Generator, ErrAlreadyFit)
}

func (e *AlreadyFitError) Is(target error) bool {
	return target == ErrAlreadyFit
}

// NotFitError is returned when an operation needs a fit generator.
type NotFitError struct {
	Generator string
	Op        string
}

func (e *NotFitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Generator, e.Op, ErrNotFit)
}

func (e *NotFitError) Is(target error) bool {
	return target == ErrNotFit
}

// IsAlreadyFit checks if err is an AlreadyFitError
func IsAlreadyFit(err error) bool {
	return errors.Is(err, ErrAlreadyFit)
}

// IsNotFit checks if err is a NotFitError
func IsNotFit(err error) bool {
	return errors.Is(err, ErrNotFit)
}
