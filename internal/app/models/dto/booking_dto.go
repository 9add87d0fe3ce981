package dto

import "github.com/mindease/mindease-server/internal/app/models"

// CreateBookingRequest is the body of POST /api/auth/bookings.
//
// Status is accepted so that clients echoing it are not rejected, but it is
// never stored: new bookings always start as pending.
type CreateBookingRequest struct {
	StudentID          int64   `json:"student_id" binding:"required,min=1"`
	CounselorID        int64   `json:"counselor_id" binding:"required,min=1"`
	PreferredDate      string  `json:"preferred_date" binding:"required"`
	PreferredTime      string  `json:"preferred_time" binding:"required"`
	SessionType        string  `json:"session_type" binding:"required"`
	Reason             string  `json:"reason" binding:"required"`
	UrgencyLevel       *string `json:"urgency_level"`
	AnxietyLevel       *string `json:"anxiety_level"`
	DepressionLevel    *string `json:"depression_level"`
	AcademicStress     *string `json:"academic_stress"`
	BurnoutLevel       *string `json:"burnout_level"`
	SleepQuality       *string `json:"sleep_quality"`
	SocialIsolation    *string `json:"social_isolation"`
	AdditionalConcerns *string `json:"additional_concerns"`
	Status             *string `json:"status"`
}

// CreateBookingResponse acknowledges a new booking
type CreateBookingResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
}

// UpdateBookingStatusRequest is the body of PUT /api/auth/bookings/:bookingId/status
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingListResponse wraps a counselor's bookings
type BookingListResponse struct {
	Bookings []models.BookingDetail `json:"bookings"`
}

// ToBooking maps the request onto a booking model. Status is left empty.
func (r *CreateBookingRequest) ToBooking() *models.Booking {
	return &models.Booking{
		StudentID:          r.StudentID,
		CounselorID:        r.CounselorID,
		PreferredDate:      r.PreferredDate,
		PreferredTime:      r.PreferredTime,
		SessionType:        r.SessionType,
		Reason:             r.Reason,
		UrgencyLevel:       r.UrgencyLevel,
		AnxietyLevel:       r.AnxietyLevel,
		DepressionLevel:    r.DepressionLevel,
		AcademicStress:     r.AcademicStress,
		BurnoutLevel:       r.BurnoutLevel,
		SleepQuality:       r.SleepQuality,
		SocialIsolation:    r.SocialIsolation,
		AdditionalConcerns: r.AdditionalConcerns,
	}
}
