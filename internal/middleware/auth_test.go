package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookstack/bookstack-api/internal/crypto"
	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/repository"
)

const testSecret = "test-secret"

type stubResolver map[int64]*model.User

func (s stubResolver) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func authRequest(t *testing.T, resolver UserResolver, header string) (*httptest.ResponseRecorder, *model.User) {
	t.Helper()

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	Authenticate(testSecret, resolver)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticate_Valid(t *testing.T) {
	user := &model.User{ID: 7, Email: "ann@x.com", Role: model.RoleUser}
	resolver := stubResolver{7: user}

	token, err := crypto.GenerateToken(7, model.RoleUser, crypto.TokenAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	rec, seen := authRequest(t, resolver, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if seen == nil || seen.ID != 7 {
		t.Errorf("expected resolved caller 7 in context, got %+v", seen)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, _ := authRequest(t, stubResolver{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_BadScheme(t *testing.T) {
	rec, _ := authRequest(t, stubResolver{}, "Token abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	user := &model.User{ID: 7, Role: model.RoleUser}
	resolver := stubResolver{7: user}

	token, err := crypto.GenerateToken(7, model.RoleUser, crypto.TokenRefresh, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	rec, _ := authRequest(t, resolver, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d for refresh token on API call", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	token, err := crypto.GenerateToken(7, model.RoleUser, crypto.TokenAccess, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	rec, _ := authRequest(t, stubResolver{}, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	// A valid token whose subject no longer exists is an authentication
	// failure, not a not-found.
	token, err := crypto.GenerateToken(99, model.RoleUser, crypto.TokenAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	rec, _ := authRequest(t, stubResolver{}, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
