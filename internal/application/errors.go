package application

import (
	"errors"

	repo "github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict error")
	ErrAuth       = errors.New("auth error")
)

// Error is a client-facing failure: Message is safe to return verbatim.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrCredentialsRequired   = &Error{Kind: ErrValidation, Message: "Username and password required"}
	ErrUsernameTaken         = &Error{Kind: ErrConflict, Message: "Username already exists"}
	ErrInvalidCredentials    = &Error{Kind: ErrAuth, Message: "Invalid username or password"}
	ErrNoticeContentRequired = &Error{Kind: ErrValidation, Message: "Text or image is required"}
	ErrSearchQueryRequired   = &Error{Kind: ErrValidation, Message: "Search query is required"}
)

func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}
