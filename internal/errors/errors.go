package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// Ledger and numbering errors
	ErrAllocationFailed         = new(ErrCodeAllocationFailed, "sequence allocation failed")
	ErrInvalidInitialAdjustment = new(ErrCodeInvalidInitialAdjustment, "invalid initial stock adjustment")
	ErrInsufficientStock        = new(ErrCodeInsufficientStock, "insufficient stock")
	ErrStoreUnavailable         = new(ErrCodeStoreUnavailable, "store unavailable")
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"

	ErrCodeAllocationFailed         = "allocation_failed"
	ErrCodeInvalidInitialAdjustment = "invalid_initial_adjustment"
	ErrCodeInsufficientStock        = "insufficient_stock"
	ErrCodeStoreUnavailable         = "store_unavailable"
)

// statusCodes maps errors to http status codes. An error can carry several
// marks, so the first match wins and the domain marks come first.
var statusCodes = []struct {
	err    error
	status int
}{
	{ErrAllocationFailed, http.StatusServiceUnavailable},
	{ErrStoreUnavailable, http.StatusServiceUnavailable},
	{ErrInsufficientStock, http.StatusConflict},
	{ErrInvalidInitialAdjustment, http.StatusUnprocessableEntity},
	{ErrValidation, http.StatusBadRequest},
	{ErrInvalidOperation, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrAlreadyExists, http.StatusConflict},
	{ErrDatabase, http.StatusInternalServerError},
	{ErrSystem, http.StatusInternalServerError},
}

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsAllocationFailed(err error) bool {
	return errors.Is(err, ErrAllocationFailed)
}

func IsInvalidInitialAdjustment(err error) bool {
	return errors.Is(err, ErrInvalidInitialAdjustment)
}

func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// IsStoreUnavailable reports connectivity failures, the only errors read paths retry
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}
