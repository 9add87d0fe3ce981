package models

// UserType is the role stored on a user account
type UserType string

const (
	UserTypeStudent   UserType = "student"
	UserTypeCounselor UserType = "counselor"
	UserTypeAdmin     UserType = "admin"
)

// UserTypes lists every accepted role
var UserTypes = []UserType{UserTypeStudent, UserTypeCounselor, UserTypeAdmin}

// IsValid reports whether t is one of the three accepted roles
func (t UserType) IsValid() bool {
	for _, candidate := range UserTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
//
// Any status may move to any other status; there is no transition table.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every accepted booking status
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// IsValid reports whether s is one of the four booking statuses
func (s BookingStatus) IsValid() bool {
	for _, candidate := range BookingStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}
