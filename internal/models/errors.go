package models

import (
	"errors"
	"fmt"
)

// LoadError means a base table could not be loaded. It is fatal: no
// dashboard data can be served without the full set of tables.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFoundError means a requested year or entity has no data. It is
// recoverable and surfaces as a "no data" message, never a crash.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What }

// NotFound builds a NotFoundError from a format string.
func NotFound(format string, args ...any) error {
	return &NotFoundError{What: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ComputationError is a failure inside one derived metric. It is
// isolated to the smallest sub-result; sibling results still return.
type ComputationError struct {
	Section string
	Err     error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Section, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// ServiceError means the external completion service failed or
// returned nothing usable.
type ServiceError struct {
	Reason string
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion service: %s: %v", e.Reason, e.Err)
	}
	return "completion service: " + e.Reason
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsServiceError reports whether err is a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
