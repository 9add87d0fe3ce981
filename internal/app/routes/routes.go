package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/controllers"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/middleware"
)

// ServiceName is reported by the health check
const ServiceName = "mind-ease-server"

// Options tunes which routes require a bearer token
type Options struct {
	// RequireToken puts the booking routes behind JWTAuth and limits
	// status updates to counselors and admins.
	RequireToken bool
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	counselorController *controllers.CounselorController,
	bookingController *controllers.BookingController,
	authMiddleware *middleware.AuthMiddleware,
	opts Options,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Service: ServiceName})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)
		api.GET("/counselors/:institution", counselorController.ListByInstitution)
		api.GET("/me", authMiddleware.JWTAuth(), authController.Me)
	}

	bookings := api.Group("/bookings")
	if opts.RequireToken {
		bookings.Use(authMiddleware.JWTAuth())
	}
	{
		bookings.POST("", bookingController.CreateBooking)
		bookings.GET("/counselor/:counselorId", bookingController.ListByCounselorID)
		bookings.GET("/counselor-name/:counselorName", bookingController.ListByCounselorName)

		statusHandlers := []gin.HandlerFunc{bookingController.UpdateStatus}
		if opts.RequireToken {
			statusHandlers = append([]gin.HandlerFunc{
				authMiddleware.RoleRequired(models.UserTypeCounselor, models.UserTypeAdmin),
			}, statusHandlers...)
		}
		bookings.PUT("/:bookingId/status", statusHandlers...)
	}
}
