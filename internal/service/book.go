package service

import (
	"context"
	"errors"

	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/policy"
	"github.com/bookstack/bookstack-api/internal/repository"
	"github.com/bookstack/bookstack-api/internal/validate"
)

// BookService handles book CRUD behind the authorization policy.
type BookService struct {
	books BookStore
	users UserStore
}

// NewBookService creates a new BookService.
func NewBookService(books BookStore, users UserStore) *BookService {
	return &BookService{books: books, users: users}
}

// Create adds a book owned by ownerID. Non-admin callers may only create
// for themselves; the target owner must exist even for admins, since a
// book cannot exist without an owner.
func (s *BookService) Create(ctx context.Context, caller *model.User, ownerID int64, req model.CreateBookRequest) (model.BookResponse, error) {
	if d := policy.Authorize(caller, policy.ActionCreateBook, ownerID); !d.Allowed {
		return model.BookResponse{}, deny(d)
	}

	if fields := validate.BookCreate(req); len(fields) > 0 {
		return model.BookResponse{}, invalid(fields)
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.BookResponse{}, ErrUserNotFound
		}
		return model.BookResponse{}, err
	}

	book := &model.Book{
		Name:    req.Name,
		Author:  req.Author,
		OwnerID: ownerID,
	}

	if err := s.books.Create(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return bookToResponse(book), nil
}

// Get returns a book by id for its owner or an admin. A non-owner is
// denied whether or not the book exists, so the listing cannot be probed
// for valid ids.
func (s *BookService) Get(ctx context.Context, caller *model.User, id int64) (model.BookResponse, error) {
	book, err := s.loadAuthorized(ctx, caller, id, policy.ActionReadBook)
	if err != nil {
		return model.BookResponse{}, err
	}
	return bookToResponse(book), nil
}

// ListByOwner returns all books owned by a user, for that user or an
// admin.
func (s *BookService) ListByOwner(ctx context.Context, caller *model.User, ownerID int64) ([]model.BookResponse, error) {
	if d := policy.Authorize(caller, policy.ActionListUserBooks, ownerID); !d.Allowed {
		return nil, deny(d)
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	books, err := s.books.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return booksToResponse(books), nil
}

// List returns one page of books matching the filter with its total
// count. Admin-only.
func (s *BookService) List(ctx context.Context, caller *model.User, filter model.BookFilter, page, limit int) (model.BookPageResponse, error) {
	if d := policy.Authorize(caller, policy.ActionListBooks, 0); !d.Allowed {
		return model.BookPageResponse{}, deny(d)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	books, total, err := s.books.List(ctx, filter, page, limit)
	if err != nil {
		return model.BookPageResponse{}, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return model.BookPageResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		Books:      booksToResponse(books),
	}, nil
}

// Update applies a partial update to a book for its owner or an admin.
func (s *BookService) Update(ctx context.Context, caller *model.User, id int64, req model.UpdateBookRequest) (model.BookResponse, error) {
	if _, err := s.loadAuthorized(ctx, caller, id, policy.ActionUpdateBook); err != nil {
		return model.BookResponse{}, err
	}

	if fields := validate.BookUpdate(req); len(fields) > 0 {
		return model.BookResponse{}, invalid(fields)
	}

	book, err := s.books.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}

	return bookToResponse(book), nil
}

// Delete removes a book for its owner or an admin.
func (s *BookService) Delete(ctx context.Context, caller *model.User, id int64) error {
	if _, err := s.loadAuthorized(ctx, caller, id, policy.ActionDeleteBook); err != nil {
		return err
	}

	err := s.books.Delete(ctx, id)
	if errors.Is(err, repository.ErrBookNotFound) {
		return ErrBookNotFound
	}
	return err
}

// loadAuthorized fetches a book and authorizes the caller against its
// owner. A missing book is reported as not-found only to admins; everyone
// else gets the same denial an existing, unowned book would produce.
func (s *BookService) loadAuthorized(ctx context.Context, caller *model.User, id int64, action policy.Action) (*model.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			if caller != nil && caller.Role.IsAdmin() {
				return nil, ErrBookNotFound
			}
			return nil, ErrForbidden
		}
		return nil, err
	}

	if d := policy.Authorize(caller, action, book.OwnerID); !d.Allowed {
		return nil, deny(d)
	}

	return book, nil
}

func bookToResponse(b *model.Book) model.BookResponse {
	return model.BookResponse{
		ID:      b.ID,
		Name:    b.Name,
		Author:  b.Author,
		OwnerID: b.OwnerID,
	}
}

func booksToResponse(books []model.Book) []model.BookResponse {
	result := make([]model.BookResponse, len(books))
	for i := range books {
		result[i] = bookToResponse(&books[i])
	}
	return result
}
