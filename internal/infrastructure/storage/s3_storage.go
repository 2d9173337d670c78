package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

// S3Options configures an S3 or S3-compatible (MinIO) bucket.
type S3Options struct {
	Region        string
	Endpoint      string // empty for AWS
	AccessKey     string
	SecretKey     string
	Bucket        string
	Prefix        string
	PublicBaseURL string // base of returned references; defaults to Endpoint/Bucket
}

// S3Storage uploads notice images as objects; references are public object URLs.
type S3Storage struct {
	Client  *s3.Client
	Bucket  string
	Prefix  string
	BaseURL string
}

// NewS3Storage builds a path-style client. Static credentials are used when
// AccessKey is set, the default AWS credential chain otherwise.
func NewS3Storage(ctx context.Context, o S3Options) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = true
	})

	base := o.PublicBaseURL
	if base == "" {
		endpoint := o.Endpoint
		if endpoint == "" {
			endpoint = "https://s3." + o.Region + ".amazonaws.com"
		}
		base = strings.TrimRight(endpoint, "/") + "/" + o.Bucket
	}
	return &S3Storage{Client: client, Bucket: o.Bucket, Prefix: o.Prefix, BaseURL: strings.TrimRight(base, "/")}, nil
}

func (s *S3Storage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// the signer needs a seekable body
	body, ok := r.(io.ReadSeeker)
	if !ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	key := s.key(name)
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.Bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(helpers.ImmutableCacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.BaseURL + "/" + key, nil
}

// Remove deletes the object; S3 treats a missing key as success.
func (s *S3Storage) Remove(ctx context.Context, name string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

func (s *S3Storage) key(name string) string {
	return path.Join(s.Prefix, name)
}

var _ repository.ImageStorage = (*S3Storage)(nil)
