package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bookstack/bookstack-api/internal/middleware"
	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/service"
)

// BookHandler handles HTTP requests for book resources, including the
// nested /users/{user_id}/books routes.
type BookHandler struct {
	service *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{service: svc}
}

// HandleCreateForUser handles POST /api/v1/users/{user_id}/books requests.
func (h *BookHandler) HandleCreateForUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	ownerID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	var req model.CreateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	book, err := h.service.Create(r.Context(), caller, ownerID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// HandleListForUser handles GET /api/v1/users/{user_id}/books requests.
func (h *BookHandler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	ownerID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	books, err := h.service.ListByOwner(r.Context(), caller, ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// HandleList handles GET /api/v1/books requests. Admin-only, with
// Author/Name/user_id filters and page/limit pagination.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	q := r.URL.Query()
	filter := model.BookFilter{
		Author: q.Get("Author"),
		Name:   q.Get("Name"),
	}
	if raw := q.Get("user_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid user_id"))
			return
		}
		filter.OwnerID = ownerID
	}

	page := queryInt(q.Get("page"), 1)
	limit := queryInt(q.Get("limit"), 10)

	resp, err := h.service.List(r.Context(), caller, filter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/books/{book_id} requests.
func (h *BookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := pathID(w, r, "book_id")
	if !ok {
		return
	}

	book, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleUpdate handles PUT /api/v1/books/{book_id} requests.
func (h *BookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := pathID(w, r, "book_id")
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	book, err := h.service.Update(r.Context(), caller, id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleDelete handles DELETE /api/v1/books/{book_id} requests.
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := pathID(w, r, "book_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Book with book id %d deleted successfully", id),
	})
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
