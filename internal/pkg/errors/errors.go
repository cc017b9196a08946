package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPlanNotFound signals that a feedback write referenced an
	// inspection plan id that was never logged.
	ErrPlanNotFound = errors.New("inspection plan not found")
)
