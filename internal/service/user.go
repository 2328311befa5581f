package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/policy"
	"github.com/bookstack/bookstack-api/internal/repository"
	"github.com/bookstack/bookstack-api/internal/validate"
)

// UserService handles user CRUD behind the authorization policy.
type UserService struct {
	users UserStore
	books BookStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, books BookStore) *UserService {
	return &UserService{users: users, books: books}
}

// Get returns a user by id. Callers may read themselves; admins may read
// anyone.
func (s *UserService) Get(ctx context.Context, caller *model.User, id int64) (model.UserResponse, error) {
	if d := policy.Authorize(caller, policy.ActionReadUser, id); !d.Allowed {
		return model.UserResponse{}, deny(d)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return s.toResponse(ctx, user)
}

// List returns every user. Admin-only.
func (s *UserService) List(ctx context.Context, caller *model.User) ([]model.UserResponse, error) {
	if d := policy.Authorize(caller, policy.ActionListUsers, 0); !d.Allowed {
		return nil, deny(d)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp, err := s.toResponse(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}

	return result, nil
}

// Update applies a partial update to a user. Fields absent from the
// request are left untouched; a changed email is lowercased and must stay
// unique.
func (s *UserService) Update(ctx context.Context, caller *model.User, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	if d := policy.Authorize(caller, policy.ActionUpdateUser, id); !d.Allowed {
		return model.UserResponse{}, deny(d)
	}

	if fields := validate.UserUpdate(req); len(fields) > 0 {
		return model.UserResponse{}, invalid(fields)
	}

	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		req.Email = &lowered
	}

	user, err := s.users.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return s.toResponse(ctx, user)
}

// Delete removes a user and, in the same transaction, every book they
// own.
func (s *UserService) Delete(ctx context.Context, caller *model.User, id int64) error {
	if d := policy.Authorize(caller, policy.ActionDeleteUser, id); !d.Allowed {
		return deny(d)
	}

	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *UserService) toResponse(ctx context.Context, user *model.User) (model.UserResponse, error) {
	books, err := s.books.ListByOwner(ctx, user.ID)
	if err != nil {
		return model.UserResponse{}, err
	}

	ids := make([]int64, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	return model.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Books:     ids,
		CreatedAt: user.CreatedAt,
	}, nil
}

// deny adapts a policy denial into the service error the handlers map to
// 403, preserving the reason.
func deny(d policy.Decision) error {
	if d.Reason == "" {
		return ErrForbidden
	}
	return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}
