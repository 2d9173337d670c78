package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the credential store operations.
// Implementations must enforce username uniqueness and return ErrDuplicate on conflict.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
