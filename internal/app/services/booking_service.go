package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// BookingService defines the interface for booking operations
type BookingService interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (int64, error)
	ListByCounselorID(ctx context.Context, counselorID int64) ([]models.BookingDetail, error)
	ListByCounselorName(ctx context.Context, counselorName string) ([]models.BookingDetail, error)
	UpdateStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error
}

type bookingServiceImpl struct {
	bookingRepo repositories.IBookingRepository
	logger      zerolog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repositories.IBookingRepository, logger zerolog.Logger) BookingService {
	return &bookingServiceImpl{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateBooking stores a new pending booking. Any status in the request is ignored.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (int64, error) {
	if req.StudentID <= 0 || req.CounselorID <= 0 ||
		req.PreferredDate == "" || req.PreferredTime == "" ||
		req.SessionType == "" || req.Reason == "" {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	booking := req.ToBooking()
	booking.Status = models.BookingStatusPending
	booking.UrgencyLevel = helpers.NilIfBlank(booking.UrgencyLevel)
	booking.AnxietyLevel = helpers.NilIfBlank(booking.AnxietyLevel)
	booking.DepressionLevel = helpers.NilIfBlank(booking.DepressionLevel)
	booking.AcademicStress = helpers.NilIfBlank(booking.AcademicStress)
	booking.BurnoutLevel = helpers.NilIfBlank(booking.BurnoutLevel)
	booking.SleepQuality = helpers.NilIfBlank(booking.SleepQuality)
	booking.SocialIsolation = helpers.NilIfBlank(booking.SocialIsolation)
	booking.AdditionalConcerns = helpers.NilIfBlank(booking.AdditionalConcerns)

	id, err := s.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownParticipant) {
			return 0, &apperrors.CustomError{
				Err:     apperrors.ErrUnknownParticipant,
				Message: "student_id and counselor_id must reference existing users",
			}
		}
		return 0, fmt.Errorf("error creating booking: %w", err)
	}

	s.logger.Info().
		Int64("bookingID", id).
		Int64("studentID", req.StudentID).
		Int64("counselorID", req.CounselorID).
		Msg("Booking created")
	return id, nil
}

// ListByCounselorID lists a counselor's bookings, newest preferred slot first
func (s *bookingServiceImpl) ListByCounselorID(ctx context.Context, counselorID int64) ([]models.BookingDetail, error) {
	if counselorID <= 0 {
		return nil, apperrors.NewValidationError("Invalid counselor ID")
	}

	bookings, err := s.bookingRepo.GetBookingsByCounselor(ctx, counselorID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return nonNilBookings(bookings), nil
}

// ListByCounselorName lists bookings by the counselor's display name.
// Counselors sharing a name have their bookings merged into one list.
func (s *bookingServiceImpl) ListByCounselorName(ctx context.Context, counselorName string) ([]models.BookingDetail, error) {
	bookings, err := s.bookingRepo.GetBookingsByCounselorName(ctx, counselorName)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return nonNilBookings(bookings), nil
}

// UpdateStatus moves a booking to any of the four statuses, whatever its
// current status. Updating a booking that does not exist is not an error.
func (s *bookingServiceImpl) UpdateStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error {
	if !status.IsValid() {
		return &apperrors.CustomError{
			Err:     apperrors.ErrInvalidBookingStatus,
			Message: "Invalid status",
		}
	}
	if bookingID <= 0 {
		return apperrors.NewValidationError("Invalid booking ID")
	}

	updated, err := s.bookingRepo.UpdateBookingStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidBookingStatus) {
			return &apperrors.CustomError{Err: err, Message: "Invalid status"}
		}
		return fmt.Errorf("error updating booking status: %w", err)
	}
	if !updated {
		s.logger.Warn().Int64("bookingID", bookingID).Str("status", string(status)).Msg("Status update matched no booking")
		return nil
	}

	s.logger.Info().Int64("bookingID", bookingID).Str("status", string(status)).Msg("Booking status updated")
	return nil
}

func nonNilBookings(bookings []models.BookingDetail) []models.BookingDetail {
	if bookings == nil {
		return []models.BookingDetail{}
	}
	return bookings
}
