package middleware

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
)

// SetupValidation makes request binding strict and makes validator
// messages use the JSON field names clients send.
func SetupValidation() {
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// BindingError converts a ShouldBindJSON failure into a validation error.
// A missing required field is reported with requiredMessage so each endpoint
// keeps its own wording; other failures describe the first problem found.
func BindingError(err error, requiredMessage string) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			if fe.Tag() == "required" {
				return apperrors.NewValidationError(requiredMessage)
			}
		}
		if len(validationErrors) > 0 {
			return apperrors.NewValidationError(formatValidationError(validationErrors[0]))
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.NewValidationError(typeErr.Field + " has an invalid type")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperrors.NewValidationError("Malformed JSON body")
	}

	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		return apperrors.NewValidationError("Unknown field " + strings.TrimPrefix(msg, "json: unknown field "))
	}

	// Empty body and other decoder failures
	return apperrors.NewValidationError(requiredMessage)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
