package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used by HashPassword. Tests lower it.
var HashCost = 12

// DummyHash is compared against when a login names an unknown user so that
// both paths spend the same time in bcrypt.
const DummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashToken returns the hex SHA-256 digest of an opaque token. Refresh tokens
// are longer than bcrypt's 72 byte limit, so they are stored digested.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
