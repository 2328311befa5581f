package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/repository"
)

// memDB is a mutex-guarded in-memory stand-in for the MySQL repositories.
// It returns the same sentinel errors and mirrors the cascade-delete
// behavior of UserRepository.Delete.
type memDB struct {
	mu         sync.Mutex
	users      map[int64]model.User
	books      map[int64]model.Book
	nextUserID int64
	nextBookID int64
}

func newMemDB() *memDB {
	return &memDB{
		users:      make(map[int64]model.User),
		books:      make(map[int64]model.Book),
		nextUserID: 1,
		nextBookID: 1,
	}
}

type memUsers struct{ db *memDB }

type memBooks struct{ db *memDB }

func (s memUsers) Create(_ context.Context, user *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = s.db.nextUserID
	s.db.nextUserID++
	s.db.users[user.ID] = *user
	return nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (s memUsers) List(_ context.Context) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users := make([]model.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s memUsers) Update(_ context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	if req.Email != nil {
		for otherID, other := range s.db.users {
			if otherID != id && other.Email == *req.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}

	s.db.users[id] = u
	copied := u
	return &copied, nil
}

func (s memUsers) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	for bookID, b := range s.db.books {
		if b.OwnerID == id {
			delete(s.db.books, bookID)
		}
	}
	delete(s.db.users, id)
	return nil
}

func (s memBooks) Create(_ context.Context, book *model.Book) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	book.ID = s.db.nextBookID
	s.db.nextBookID++
	s.db.books[book.ID] = *book
	return nil
}

func (s memBooks) GetByID(_ context.Context, id int64) (*model.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	copied := b
	return &copied, nil
}

func (s memBooks) ListByOwner(_ context.Context, ownerID int64) ([]model.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var books []model.Book
	for _, b := range s.db.books {
		if b.OwnerID == ownerID {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (s memBooks) List(_ context.Context, filter model.BookFilter, page, limit int) ([]model.Book, int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var matched []model.Book
	for _, b := range s.db.books {
		if filter.Author != "" && !strings.Contains(b.Author, filter.Author) {
			continue
		}
		if filter.Name != "" && !strings.Contains(b.Name, filter.Name) {
			continue
		}
		if filter.OwnerID != 0 && b.OwnerID != filter.OwnerID {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s memBooks) Update(_ context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Author != nil {
		b.Author = *req.Author
	}

	s.db.books[id] = b
	copied := b
	return &copied, nil
}

func (s memBooks) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.books[id]; !ok {
		return repository.ErrBookNotFound
	}
	delete(s.db.books, id)
	return nil
}

var (
	_ UserStore = memUsers{}
	_ BookStore = memBooks{}
)
