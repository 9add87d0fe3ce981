package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used by the original deployment
const DefaultBcryptCost = 10

// HashPassword returns the salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
