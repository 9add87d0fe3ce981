package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("user type mismatch")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenMissing       = errors.New("token missing")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// Booking errors
var (
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrUnknownParticipant   = errors.New("booking references an unknown user")
)

// NewValidationError wraps ErrValidationFailed with a client-safe message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError carries a message that is safe to show to API clients while
// still matching its sentinel with errors.Is.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// PublicMessage returns the client-safe message of err if it carries one.
func PublicMessage(err error) (string, bool) {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message, true
	}
	return "", false
}
