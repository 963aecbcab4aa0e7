package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrMalformedRequest = errors.New("malformed request")

	ErrSourceUnavailable = errors.New("offer source unavailable")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ValidationErrors collects every failing field of one input, in the order
// the fields were checked.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, &ValidationError{Field: field, Message: message})
}

// OrNil returns nil for an empty list so callers can return it as an error.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// MalformedRequest reports a request body that could not be interpreted at
// all. It surfaces to clients as an error on the "request" field.
func MalformedRequest(message string, cause error) error {
	return &AppError{
		Code:    "MALFORMED_REQUEST",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrMalformedRequest, cause),
	}
}

// WrapSourceError reports a bank source that could not be used. The code
// names the failure reason so callers can count it.
func WrapSourceError(cause error, code, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrSourceUnavailable, cause),
	}
}
