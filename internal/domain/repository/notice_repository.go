package repository

import (
	"context"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
)

// NoticeRepository defines the notice store operations.
type NoticeRepository interface {
	Create(ctx context.Context, n *entity.Notice) error
	// Latest returns the notice with the greatest CreatedAt, or ErrNotFound.
	Latest(ctx context.Context) (*entity.Notice, error)
	// List returns every notice, newest first.
	List(ctx context.Context) ([]entity.Notice, error)
}
