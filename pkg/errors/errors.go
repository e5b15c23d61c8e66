package errors

import (
	"errors"
	"fmt"
)

// Codes carried by AppError and surfaced to API callers.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeDeviceAlreadyAssigned = "DEVICE_ALREADY_ASSIGNED"
	CodeCabinOccupied         = "CABIN_OCCUPIED"
	CodeStore                 = "STORE_ERROR"
	CodeLinkCreateFailed      = "LINK_CREATE_FAILED"
	CodeFetchFailed           = "FETCH_FAILED"
	CodeRefreshInFlight       = "REFRESH_IN_FLIGHT"
	CodeNotFound              = "NOT_FOUND"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternal              = "INTERNAL_ERROR"
)

var (
	ErrInvalidInput = errors.New("invalid input data")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the AppError code found in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
