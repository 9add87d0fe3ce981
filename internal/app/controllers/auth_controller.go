// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/services"
	"github.com/mindease/mindease-server/internal/middleware"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student, counselor or admin account and returns it with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Email or password missing"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.HandleAPIError(ctx, middleware.BindingError(err, "Email and password are required"))
		return
	}

	response, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to register user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// Login authenticates a user
// @Summary Log in
// @Description Verifies credentials and, if userType is given, that it matches the account's role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Email or password missing"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "User type mismatch"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		middleware.HandleAPIError(ctx, middleware.BindingError(err, "Email and password are required"))
		return
	}

	response, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Info().Err(err).Str("email", req.Email).Msg("Login rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Me returns the account of the token holder
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "User no longer exists"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
