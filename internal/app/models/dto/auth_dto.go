package dto

import "github.com/mindease/mindease-server/internal/app/models"

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email            string  `json:"email" binding:"required"`
	Password         string  `json:"password" binding:"required"`
	Name             *string `json:"name"`
	UserType         string  `json:"userType" binding:"omitempty,oneof=student counselor admin"`
	EmergencyContact *string `json:"emergencyContact"`
	Institution      *string `json:"institution"`
}

// LoginRequest is the body of POST /api/auth/login.
// When UserType is set it must equal the stored role exactly; any other
// value, known role or not, is a role mismatch once credentials check out.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType"`
}

// UserResponse is a user record without its password hash
type UserResponse struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	Name             *string `json:"name"`
	UserType         string  `json:"user_type"`
	EmergencyContact *string `json:"emergency_contact"`
	Institution      *string `json:"institution"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ProfileResponse is returned by the token-protected profile endpoint
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// CounselorListResponse wraps counselors of one institution
type CounselorListResponse struct {
	Counselors []models.Counselor `json:"counselors"`
}

// ToUserResponse strips credentials from a user
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		UserType:         string(user.UserType),
		EmergencyContact: user.EmergencyContact,
		Institution:      user.Institution,
	}
}
