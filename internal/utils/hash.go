package utils

import "golang.org/x/crypto/bcrypt"

// passwordCost is the bcrypt work factor used for customer and admin accounts.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storing an account password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
