package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes an admin password with bcrypt. Studio clients log in
// with a numeric PIN instead; hashing only applies to back-office accounts.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password with its bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
