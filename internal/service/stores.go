package service

import (
	"context"
	"errors"

	"github.com/bookstack/bookstack-api/internal/model"
)

// UserStore is the persistence contract the services need for users.
// *repository.UserRepository satisfies it; tests use an in-memory store.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// BookStore is the persistence contract the services need for books.
type BookStore interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error)
	List(ctx context.Context, filter model.BookFilter, page, limit int) ([]model.Book, int, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// ValidationError carries the per-field messages produced by the
// request validators.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// invalid wraps a non-empty validator result; callers must have checked
// that fields is non-empty.
func invalid(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
