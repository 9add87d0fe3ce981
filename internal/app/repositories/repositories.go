package repositories

import (
	"errors"

	"github.com/mindease/mindease-server/internal/db"
)

// ErrNotFound is returned by lookups that find no row
var ErrNotFound = errors.New("record not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	BookingRepository *BookingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(database),
		BookingRepository: NewBookingRepository(database),
	}
}
