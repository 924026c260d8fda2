package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks (InvalidArgument).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a concurrent write changed the resource underneath the caller.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrStoreFailure indicates that the underlying storage failed.
var ErrStoreFailure = errors.New("store failure")

var (
	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	ErrInvalidID = fmt.Errorf("%w: malformed id", ErrValidation)
	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	// ErrInvalidMethod is returned for payment methods other than Cash or Online.
	ErrInvalidMethod = fmt.Errorf("%w: payment method must be Cash or Online", ErrValidation)
	// ErrPartyNotFound is returned when a customer or supplier reference does not resolve.
	ErrPartyNotFound = fmt.Errorf("party %w", ErrNotFound)
)

// AppError carries an HTTP-ish code alongside a wrapped cause.
// Repositories use it for storage failures (code >= 500) and bad cursor input (400).
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is classify AppErrors by code.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrStoreFailure:
		return e.Code >= 500
	case ErrValidation:
		return e.Code == 400
	}
	return false
}

// StageError reports which step of a multi-step write failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("payment failed at stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is reports every stage failure as a store failure.
func (e *StageError) Is(target error) bool {
	return target == ErrStoreFailure
}
