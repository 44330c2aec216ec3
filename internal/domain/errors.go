package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var ErrQuoteNotFound = errors.New("quote not found")

// InvalidArgumentError reports a caller-correctable input problem.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

var (
	ErrMissingParameters = &InvalidArgumentError{Reason: "all parameters must be provided"}
	ErrNegativeDistance  = &InvalidArgumentError{Reason: "distance cannot be negative"}
	ErrFragileTooFar     = &InvalidArgumentError{
		Reason: fmt.Sprintf("fragile items cannot be shipped beyond %.0f km", MaxFragileDistanceKm),
	}
)
