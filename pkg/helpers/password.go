package helpers

import "golang.org/x/crypto/bcrypt"

// MinPasswordCost is the lowest bcrypt cost accepted for stored passwords.
const MinPasswordCost = 10

// HashPassword hashes the plain text password using bcrypt.
// Costs below MinPasswordCost are raised to it.
func HashPassword(plain string, cost int) (string, error) {
	if cost < MinPasswordCost {
		cost = MinPasswordCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
