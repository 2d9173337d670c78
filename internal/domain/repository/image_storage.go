package repository

import (
	"context"
	"io"
)

// ImageStorage persists uploaded notice images.
// Save returns the reference stored on the notice (path or URL).
type ImageStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}
