package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// UserRepository keeps users in a map keyed by the exact username.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	r.users[u.Username] = *u
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
