package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/services"
	"github.com/mindease/mindease-server/internal/middleware"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// BookingController handles counseling session bookings
type BookingController struct {
	bookingService services.BookingService
	logger         zerolog.Logger
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService services.BookingService, logger zerolog.Logger) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking stores a booking request
// @Summary Request a counseling session
// @Description New bookings always start as pending; a status in the body is ignored
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking request"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/bookings [post]
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid booking request payload")
		middleware.HandleAPIError(ctx, middleware.BindingError(err, "Missing required fields"))
		return
	}

	id, err := c.bookingService.CreateBooking(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateBookingResponse{
		Message:   "Booking created successfully",
		BookingID: id,
	})
}

// ListByCounselorID lists bookings assigned to a counselor
// @Summary Bookings of a counselor
// @Tags bookings
// @Produce json
// @Param counselorId path int true "Counselor ID" Format(int64) minimum(1)
// @Success 200 {object} dto.BookingListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid counselor ID"
// @Router /auth/bookings/counselor/{counselorId} [get]
func (c *BookingController) ListByCounselorID(ctx *gin.Context) {
	counselorID, err := parseIDParam(ctx, "counselorId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid counselor ID"))
		return
	}

	bookings, err := c.bookingService.ListByCounselorID(ctx.Request.Context(), counselorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BookingListResponse{Bookings: bookings})
}

// ListByCounselorName lists bookings by counselor display name
// @Summary Bookings of a counselor, by name
// @Description Best effort: counselors sharing a display name have their bookings merged
// @Tags bookings
// @Produce json
// @Param counselorName path string true "Counselor display name"
// @Success 200 {object} dto.BookingListResponse
// @Router /auth/bookings/counselor-name/{counselorName} [get]
func (c *BookingController) ListByCounselorName(ctx *gin.Context) {
	bookings, err := c.bookingService.ListByCounselorName(ctx.Request.Context(), ctx.Param("counselorName"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BookingListResponse{Bookings: bookings})
}

// UpdateStatus changes a booking's status
// @Summary Update booking status
// @Description Any of pending, confirmed, completed, cancelled is accepted from any current status
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingId path int true "Booking ID" Format(int64) minimum(1)
// @Param request body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /auth/bookings/{bookingId}/status [put]
func (c *BookingController) UpdateStatus(ctx *gin.Context) {
	bookingID, err := parseIDParam(ctx, "bookingId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid booking ID"))
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err, "Invalid status"))
		return
	}

	if err := c.bookingService.UpdateStatus(ctx.Request.Context(), bookingID, models.BookingStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Booking status updated successfully"})
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
