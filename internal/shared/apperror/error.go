package apperror

import "fmt"

type AppError struct {
	Code       string // Error code (e.g., VALIDATION_FAILED)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Details    any    // Extra payload for clients (optional)
	Err        error  // Wrapped original error (optional)

	origin *AppError
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets a copy made by WithDetails or WithMessage still match its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	for o := e.origin; o != nil; o = o.origin {
		if o == t {
			return true
		}
	}
	return false
}

// WithDetails returns a copy carrying details. Sentinels are never mutated.
func (e *AppError) WithDetails(details any) *AppError {
	cp := e.derive()
	cp.Details = details
	return cp
}

// WithMessage returns a copy with a different user-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := e.derive()
	cp.Message = message
	return cp
}

func (e *AppError) derive() *AppError {
	cp := *e
	cp.origin = e
	return &cp
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
