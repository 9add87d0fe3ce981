package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/logger"
)

// HandleAPIError maps a service error onto a status code and an {error} body.
// Unexpected errors are logged and answered with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidBookingStatus),
		errors.Is(err, apperrors.ErrUnknownParticipant):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, publicMessage(err, "Validation failed")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Token has expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenMissing):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrRoleMismatch):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeUserTypeMismatch, "User type mismatch"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeForbidden, publicMessage(err, "Permission denied")))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrorCodeResourceAlreadyExists, "Email already registered"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound), errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Resource not found"))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func publicMessage(err error, fallback string) string {
	if msg, ok := apperrors.PublicMessage(err); ok {
		return msg
	}
	return fallback
}
