package models

// Booking defines a counseling session request based on the 'bookings' table.
// The wellness indicators are free-text labels reported by the student.
type Booking struct {
	ID                 int64         `json:"id" db:"id"`
	StudentID          int64         `json:"student_id" db:"student_id"`
	CounselorID        int64         `json:"counselor_id" db:"counselor_id"`
	PreferredDate      string        `json:"preferred_date" db:"preferred_date"`
	PreferredTime      string        `json:"preferred_time" db:"preferred_time"`
	SessionType        string        `json:"session_type" db:"session_type"`
	Reason             string        `json:"reason" db:"reason"`
	UrgencyLevel       *string       `json:"urgency_level" db:"urgency_level"`
	AnxietyLevel       *string       `json:"anxiety_level" db:"anxiety_level"`
	DepressionLevel    *string       `json:"depression_level" db:"depression_level"`
	AcademicStress     *string       `json:"academic_stress" db:"academic_stress"`
	BurnoutLevel       *string       `json:"burnout_level" db:"burnout_level"`
	SleepQuality       *string       `json:"sleep_quality" db:"sleep_quality"`
	SocialIsolation    *string       `json:"social_isolation" db:"social_isolation"`
	AdditionalConcerns *string       `json:"additional_concerns" db:"additional_concerns"`
	Status             BookingStatus `json:"status" db:"status"`
	CreatedAt          string        `json:"created_at" db:"created_at"`
}

// BookingDetail is a booking joined with the names of both participants
type BookingDetail struct {
	Booking
	StudentName   *string `json:"student_name" db:"student_name"`
	StudentEmail  string  `json:"student_email" db:"student_email"`
	CounselorName *string `json:"counselor_name" db:"counselor_name"`
}
