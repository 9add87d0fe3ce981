package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidation()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperrors.NewValidationError("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"bare validation", apperrors.ErrValidationFailed, http.StatusBadRequest, "Validation failed"},
		{"invalid status", &apperrors.CustomError{Err: apperrors.ErrInvalidBookingStatus, Message: "Invalid status"}, http.StatusBadRequest, "Invalid status"},
		{"unknown participant", apperrors.ErrUnknownParticipant, http.StatusBadRequest, "Validation failed"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
		{"invalid token", fmt.Errorf("%w: bad sig", apperrors.ErrTokenInvalid), http.StatusUnauthorized, "Invalid token"},
		{"role mismatch", apperrors.ErrRoleMismatch, http.StatusForbidden, "User type mismatch"},
		{"permission", apperrors.ErrPermissionDenied, http.StatusForbidden, "Permission denied"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"row not found", fmt.Errorf("lookup: %w", repositories.ErrNotFound), http.StatusNotFound, "Resource not found"},
		{"internal", errors.New("disk I/O error at /var/db"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w).Error)
		})
	}
}

type bindTarget struct {
	Email  string `json:"email" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=pending confirmed"`
	Count  int    `json:"count" binding:"omitempty,min=1"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	return BindingError(err, "Email is required")
}

func TestBindingError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing required", `{"status":"pending"}`, "Email is required"},
		{"empty body", ``, "Email is required"},
		{"oneof uses json name", `{"email":"a@x.com","status":"done"}`, "status must be one of: pending confirmed"},
		{"min", `{"email":"a@x.com","count":-2}`, "count must be at least 1"},
		{"wrong type", `{"email":5}`, "email has an invalid type"},
		{"malformed", `{"email":`, "Email is required"},
		{"syntax", `{"email" "a"}`, "Malformed JSON body"},
		{"unknown field", `{"email":"a@x.com","role":"admin"}`, `Unknown field "role"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindBody(t, tt.body)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			msg, ok := apperrors.PublicMessage(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func newAuthRouter(jwtService *auth.JWTService, roles ...models.UserType) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	router := gin.New()
	handlers := []gin.HandlerFunc{m.JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "userType": c.MustGet(ContextUserType)})
	})
	router.GET("/protected", handlers...)
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour})
	router := newAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(&models.User{ID: 7, Email: "s@x.com", UserType: models.UserTypeStudent})
	require.NoError(t, err)

	w := doGet(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"userType":"student"}`, w.Body.String())

	w = doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decodeError(t, w).Error)

	w = doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token format", decodeError(t, w).Error)

	w = doGet(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error)

	expired := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: -time.Minute})
	old, err := expired.GenerateToken(&models.User{ID: 7, Email: "s@x.com", UserType: models.UserTypeStudent})
	require.NoError(t, err)
	w = doGet(router, "Bearer "+old)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(dto.ErrorCodeExpiredToken), string(decodeError(t, w).Code))
}

func TestRoleRequired(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour})
	router := newAuthRouter(jwtService, models.UserTypeCounselor, models.UserTypeAdmin)

	for userType, want := range map[models.UserType]int{
		models.UserTypeCounselor: http.StatusOK,
		models.UserTypeAdmin:     http.StatusOK,
		models.UserTypeStudent:   http.StatusForbidden,
	} {
		token, err := jwtService.GenerateToken(&models.User{ID: 1, Email: "u@x.com", UserType: userType})
		require.NoError(t, err)
		assert.Equal(t, want, doGet(router, "Bearer "+token).Code, string(userType))
	}
}

func TestRoleRequired_WithoutJWTAuth(t *testing.T) {
	m := NewAuthMiddleware(auth.NewJWTService(auth.JWTConfig{SecretKey: "s"}))
	router := gin.New()
	router.GET("/protected", m.RoleRequired(models.UserTypeAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "").Code)
}

func TestRequestLogger(t *testing.T) {
	var buf strings.Builder
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/missing"`)
}
