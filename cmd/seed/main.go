package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/application"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/store"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	stores, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer stores.Close()

	username := "demoUser"
	password := "password123"

	auth := application.NewAuthService(stores.Users, cfg.BcryptCost, logger)
	if err := seed(ctx, auth, application.NewNoticeService(stores.Notices, nil, logger), username, password); err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Printf("seeded user: username=%s password=%s store=%s\n", username, password, stores.Driver)
}

// seed is idempotent for the user; the welcome notice is added on every run.
func seed(ctx context.Context, auth *application.AuthService, notices *application.NoticeService, username, password string) error {
	if err := auth.Signup(ctx, username, password); err != nil && !errors.Is(err, application.ErrConflict) {
		return fmt.Errorf("seed user: %w", err)
	}
	if _, err := notices.CreateFromInline(ctx, username, "Welcome to the notice board!", ""); err != nil {
		return fmt.Errorf("seed notice: %w", err)
	}
	return nil
}
