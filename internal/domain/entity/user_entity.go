package entity

import (
	"time"
)

// User is a registered notice-board account
// PasswordHash holds the bcrypt hash; the plain password is never kept.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
