package models

// User defines the user model based on the 'users' table
type User struct {
	ID               int64    `json:"id" db:"id"`
	Email            string   `json:"email" db:"email"`
	PasswordHash     string   `json:"-" db:"password_hash"`
	Name             *string  `json:"name" db:"name"`
	UserType         UserType `json:"user_type" db:"user_type"`
	EmergencyContact *string  `json:"emergency_contact" db:"emergency_contact"`
	Institution      *string  `json:"institution" db:"institution"`
	CreatedAt        string   `json:"created_at" db:"created_at"`
}

// Counselor is the public projection of a counselor account
type Counselor struct {
	ID    int64   `json:"id" db:"id"`
	Name  *string `json:"name" db:"name"`
	Email string  `json:"email" db:"email"`
}
