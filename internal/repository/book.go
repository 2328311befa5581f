package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookstack/bookstack-api/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

// BookRepository handles book persistence operations.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, name, author, owner_id, created_at, updated_at`

// Create inserts a new book and sets the generated ID on the book struct.
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `INSERT INTO books (name, author, owner_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, book.Name, book.Author, book.OwnerID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	book.ID = id
	return nil
}

// GetByID retrieves a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	book := &model.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Name, &book.Author, &book.OwnerID,
		&book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	return book, nil
}

// ListByOwner retrieves all books owned by a user, ordered by id.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// List retrieves one page of books matching the filter, plus the total
// match count. Author and Name are substring matches; OwnerID is exact.
func (r *BookRepository) List(ctx context.Context, filter model.BookFilter, page, limit int) ([]model.Book, int, error) {
	var (
		where []string
		args  []any
	)
	if filter.Author != "" {
		where = append(where, "author LIKE ?")
		args = append(args, "%"+filter.Author+"%")
	}
	if filter.Name != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookColumns + ` FROM books` + clause + ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Update applies the non-nil fields of req to a book and returns the
// updated record.
func (r *BookRepository) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	var (
		sets []string
		args []any
	)
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *req.Author)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a book.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}

func collectBooks(rows *sql.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Author, &b.OwnerID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
