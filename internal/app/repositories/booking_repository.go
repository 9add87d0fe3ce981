package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/db"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/dberrors"
	"github.com/mindease/mindease-server/internal/pkg/logger"
)

var bookingDetailColumns = []string{
	"b.id", "b.student_id", "b.counselor_id", "b.preferred_date", "b.preferred_time",
	"b.session_type", "b.reason", "b.urgency_level", "b.anxiety_level", "b.depression_level",
	"b.academic_stress", "b.burnout_level", "b.sleep_quality", "b.social_isolation",
	"b.additional_concerns", "b.status", "b.created_at",
	"s.name AS student_name", "s.email AS student_email", "c.name AS counselor_name",
}

// IBookingRepository defines the booking operations the services depend on
type IBookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (int64, error)
	GetBookingByID(ctx context.Context, id int64) (*models.BookingDetail, error)
	GetBookingsByCounselor(ctx context.Context, counselorID int64) ([]models.BookingDetail, error)
	GetBookingsByCounselorName(ctx context.Context, counselorName string) ([]models.BookingDetail, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) (bool, error)
}

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(database *db.Database) *BookingRepository {
	return &BookingRepository{
		db: database,
		sb: database.Builder(),
	}
}

// CreateBooking inserts a booking and returns its id. An empty status defaults to pending.
// Column typing is the only validation done here.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (int64, error) {
	status := booking.Status
	if status == "" {
		status = models.BookingStatusPending
	}

	query, args, err := r.sb.Insert("bookings").
		Columns(
			"student_id", "counselor_id", "preferred_date", "preferred_time", "session_type",
			"reason", "urgency_level", "anxiety_level", "depression_level", "academic_stress",
			"burnout_level", "sleep_quality", "social_isolation", "additional_concerns", "status",
		).
		Values(
			booking.StudentID, booking.CounselorID, booking.PreferredDate, booking.PreferredTime, booking.SessionType,
			booking.Reason, booking.UrgencyLevel, booking.AnxietyLevel, booking.DepressionLevel, booking.AcademicStress,
			booking.BurnoutLevel, booking.SleepQuality, booking.SocialIsolation, booking.AdditionalConcerns, status,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create booking SQL")
		return 0, fmt.Errorf("failed to build create booking query: %w", err)
	}

	var id int64
	if err := r.db.DB.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUnknownParticipant
		}
		logger.Error().Err(err).
			Int64("studentID", booking.StudentID).
			Int64("counselorID", booking.CounselorID).
			Msg("Error executing create booking query")
		return 0, fmt.Errorf("error creating booking: %w", err)
	}

	return id, nil
}

// GetBookingByID retrieves one booking with participant names. Returns ErrNotFound when absent.
func (r *BookingRepository) GetBookingByID(ctx context.Context, id int64) (*models.BookingDetail, error) {
	bookings, err := r.listDetails(ctx, squirrel.Eq{"b.id": id})
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNotFound
	}
	return &bookings[0], nil
}

// GetBookingsByCounselor lists a counselor's bookings, latest preferred slot first.
func (r *BookingRepository) GetBookingsByCounselor(ctx context.Context, counselorID int64) ([]models.BookingDetail, error) {
	return r.listDetails(ctx, squirrel.Eq{"b.counselor_id": counselorID})
}

// GetBookingsByCounselorName lists bookings of every counselor whose display
// name matches exactly. Two counselors sharing a name have their bookings merged.
func (r *BookingRepository) GetBookingsByCounselorName(ctx context.Context, counselorName string) ([]models.BookingDetail, error) {
	return r.listDetails(ctx, squirrel.Eq{"c.name": counselorName})
}

func (r *BookingRepository) listDetails(ctx context.Context, where squirrel.Eq) ([]models.BookingDetail, error) {
	query, args, err := r.sb.Select(bookingDetailColumns...).
		From("bookings b").
		Join("users s ON b.student_id = s.id").
		Join("users c ON b.counselor_id = c.id").
		Where(where).
		OrderBy("b.preferred_date DESC", "b.preferred_time DESC", "b.id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list bookings SQL")
		return nil, fmt.Errorf("failed to build list bookings query: %w", err)
	}

	bookings := []models.BookingDetail{}
	if err := r.db.DB.SelectContext(ctx, &bookings, query, args...); err != nil {
		logger.Error().Err(err).Msg("Error querying bookings")
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus sets the status of a booking unconditionally and
// reports whether a row was changed.
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) (bool, error) {
	query, args, err := r.sb.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update booking status SQL")
		return false, fmt.Errorf("failed to build update booking status query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return false, apperrors.ErrInvalidBookingStatus
		}
		logger.Error().Err(err).Int64("bookingID", bookingID).Msg("Error executing update booking status query")
		return false, fmt.Errorf("error updating booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}
