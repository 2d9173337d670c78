// Package store opens the backends selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/config"
	repo "github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/memory"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/postgres"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/storage"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

// Stores bundles the repositories of one backend. Close releases its connections.
type Stores struct {
	Driver  string
	Users   repo.UserRepository
	Notices repo.NoticeRepository
	Close   func()
}

// Open connects to the store named by cfg.StoreDriver.
// Postgres migrations and Mongo indexes are applied before returning.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Stores{
			Driver:  cfg.StoreDriver,
			Users:   mongodb.NewUserRepository(db),
			Notices: mongodb.NewNoticeRepository(db),
			Close:   func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StorePostgres:
		if err := postgres.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, err
		}
		return &Stores{
			Driver:  cfg.StoreDriver,
			Users:   postgres.NewUserRepository(pool),
			Notices: postgres.NewNoticeRepository(pool),
			Close:   pool.Close,
		}, nil

	case config.StoreMemory:
		helpers.LogInfo(logger, "using in-memory store; data is lost on restart", nil)
		return &Stores{
			Driver:  cfg.StoreDriver,
			Users:   memory.NewUserRepository(),
			Notices: memory.NewNoticeRepository(),
			Close:   func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenImages returns the upload storage named by cfg.UploadBackend and its closer.
func OpenImages(ctx context.Context, cfg *config.Config) (repo.ImageStorage, func(), error) {
	switch cfg.UploadBackend {
	case config.UploadLocal:
		local, err := storage.NewLocalStorage(cfg.UploadDir, "/uploads")
		if err != nil {
			return nil, nil, err
		}
		return local, func() {}, nil

	case config.UploadGCS:
		if cfg.GCSBucket == "" {
			return nil, nil, fmt.Errorf("GCS_BUCKET is required for the gcs upload backend")
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs client: %w", err)
		}
		return storage.NewGCSStorage(client, cfg.GCSBucket, "notices"), func() { _ = client.Close() }, nil

	case config.UploadS3:
		if cfg.S3Bucket == "" {
			return nil, nil, fmt.Errorf("S3_BUCKET is required for the s3 upload backend")
		}
		s3Store, err := storage.NewS3Storage(ctx, storage.S3Options{
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			Prefix:        "notices",
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3Store, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
}
