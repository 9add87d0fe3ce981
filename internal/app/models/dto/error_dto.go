package dto

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeUserTypeMismatch   ErrorCode = "AUTH_002"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorResponse is the body of every failed request. Clients display Error as-is.
type ErrorResponse struct {
	Error string    `json:"error" example:"Email and password are required"`
	Code  ErrorCode `json:"code,omitempty" example:"VAL_001"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
	}
}
