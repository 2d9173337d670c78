package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// LocalStorage writes uploads into Dir; references are URLPrefix + "/" + name.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

// NewLocalStorage creates dir if it does not exist.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *LocalStorage) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	p, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(p)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(s.URLPrefix, name), nil
}

func (s *LocalStorage) Remove(_ context.Context, name string) error {
	p, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (s *LocalStorage) pathFor(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	return filepath.Join(s.Dir, name), nil
}

var _ repository.ImageStorage = (*LocalStorage)(nil)
