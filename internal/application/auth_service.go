package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	repo "github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

var (
	signupsTotal = expvar.NewInt("signups_total")
	loginsTotal  = expvar.NewInt("logins_total")
)

type AuthService struct {
	Users      repo.UserRepository
	BcryptCost int
	Logger     *logrus.Logger
	Now        func() time.Time
}

func NewAuthService(users repo.UserRepository, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, BcryptCost: bcryptCost, Logger: logger, Now: time.Now}
}

// Signup stores a new user with a bcrypt-hashed password.
// The store's unique constraint settles concurrent signups for one username.
func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}

	existing, err := s.Users.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	signupsTotal.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("user signed up")
	}
	return nil
}

// Login verifies credentials. Unknown users and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return ErrInvalidCredentials
	}

	loginsTotal.Add(1)
	return nil
}
