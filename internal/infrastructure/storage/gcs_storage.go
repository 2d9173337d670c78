package storage

import (
	"context"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

// GCSStorage uploads notice images to a bucket; references are public object URLs.
type GCSStorage struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

func NewGCSStorage(client *gcs.Client, bucket, prefix string) *GCSStorage {
	return &GCSStorage{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *GCSStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return helpers.UploadObject(ctx, s.Client, s.Bucket, s.objectPath(name), contentType, r)
}

func (s *GCSStorage) Remove(ctx context.Context, name string) error {
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, s.objectPath(name))
}

func (s *GCSStorage) objectPath(name string) string {
	return path.Join(s.Prefix, name)
}

var _ repository.ImageStorage = (*GCSStorage)(nil)
