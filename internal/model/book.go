package model

import "time"

// Book represents a book owned by a user.
type Book struct {
	ID        int64
	Name      string
	Author    string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBookRequest represents a book creation request. The field names
// mirror the public API contract, which capitalizes them.
type CreateBookRequest struct {
	Name   string `json:"Name"`
	Author string `json:"Author"`
}

// UpdateBookRequest represents a partial book update. Nil fields were not
// present in the request body and are left untouched.
type UpdateBookRequest struct {
	Name   *string `json:"Name"`
	Author *string `json:"Author"`
}

// BookResponse represents book data returned by the API.
type BookResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"Name"`
	Author  string `json:"Author"`
	OwnerID int64  `json:"user_id"`
}

// BookFilter narrows a book listing. Author and Name are substring
// matches; OwnerID is an exact match when non-zero.
type BookFilter struct {
	Author  string
	Name    string
	OwnerID int64
}

// BookPageResponse represents one page of a filtered book listing.
type BookPageResponse struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Books      []BookResponse `json:"books"`
}
