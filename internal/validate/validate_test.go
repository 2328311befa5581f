package validate

import (
	"strings"
	"testing"

	"github.com/bookstack/bookstack-api/internal/model"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"Str0ng&Passw0rd", true},
		{"abcdefgh", false},       // no upper, digit or symbol
		{"ABCDEFG1!", false},      // no lower
		{"abcdefg1!", false},      // no upper
		{"Abcdefgh!", false},      // no digit
		{"Abcdefg1", false},       // no symbol
		{"Ab1!", false},           // too short
		{"Abcdef1#", false},       // symbol outside the allowed set
		{"Abcdef1! ", false},      // space not allowed
		{"", false},
	}

	for _, tt := range tests {
		if got := Password(tt.password); got != tt.want {
			t.Errorf("Password(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"ann@x.com", "ann.lee@example.co.uk", "a+b@domain.org"}
	for _, s := range valid {
		if err := Email(s); err != nil {
			t.Errorf("Email(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "not-an-email", "ann@", "@x.com", "ann@localhost", "Ann Lee <ann@x.com>"}
	for _, s := range invalid {
		if err := Email(s); err == nil {
			t.Errorf("Email(%q) expected error", s)
		}
	}
}

func TestUserCreate_Valid(t *testing.T) {
	errs := UserCreate(model.RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Password:  "Abcdef1!",
	})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestUserCreate_AllFieldsInvalid(t *testing.T) {
	errs := UserCreate(model.RegisterRequest{
		FirstName: "Ann3",
		LastName:  "",
		Email:     "nope",
		Password:  "weak",
		Role:      "owner",
	})

	for _, field := range []string{"first_name", "last_name", "email_id", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %q, got %v", field, errs)
		}
	}
}

func TestUserCreate_RoleCaseInsensitive(t *testing.T) {
	for _, role := range []string{"admin", "Admin", "USER", "user"} {
		errs := UserCreate(model.RegisterRequest{
			FirstName: "Ann",
			LastName:  "Lee",
			Email:     "ann@x.com",
			Password:  "Abcdef1!",
			Role:      role,
		})
		if _, ok := errs["role"]; ok {
			t.Errorf("role %q should be accepted, got %v", role, errs)
		}
	}
}

func TestUserUpdate_AbsentFieldsOK(t *testing.T) {
	errs := UserUpdate(model.UpdateUserRequest{})
	if len(errs) != 0 {
		t.Errorf("expected no errors for empty update, got %v", errs)
	}
}

func TestUserUpdate_PresentInvalidFields(t *testing.T) {
	empty := ""
	bad := "Ann3"
	errs := UserUpdate(model.UpdateUserRequest{
		FirstName: &bad,
		Email:     &empty,
	})

	if _, ok := errs["first_name"]; !ok {
		t.Errorf("expected first_name error, got %v", errs)
	}
	if _, ok := errs["email_id"]; !ok {
		t.Errorf("expected email_id error, got %v", errs)
	}
	if _, ok := errs["last_name"]; ok {
		t.Errorf("absent last_name should not error, got %v", errs)
	}
}

func TestBookCreate(t *testing.T) {
	errs := BookCreate(model.CreateBookRequest{Name: "Dune", Author: "Frank Herbert"})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	errs = BookCreate(model.CreateBookRequest{Name: "D", Author: "Author 42"})
	if errs["Name"] == "" {
		t.Errorf("expected Name error for 1-char name, got %v", errs)
	}
	if errs["Author"] == "" {
		t.Errorf("expected Author error for digits, got %v", errs)
	}

	errs = BookCreate(model.CreateBookRequest{Name: strings.Repeat("a", 256), Author: "Frank Herbert"})
	if errs["Name"] == "" {
		t.Errorf("expected Name error for 256-char name, got %v", errs)
	}

	errs = BookCreate(model.CreateBookRequest{Name: strings.Repeat("a", 255), Author: "Frank Herbert"})
	if len(errs) != 0 {
		t.Errorf("255-char name should be valid, got %v", errs)
	}
}

func TestBookCreate_NameLengthInCharacters(t *testing.T) {
	// Multi-byte names must be measured in characters, not bytes.
	errs := BookCreate(model.CreateBookRequest{Name: strings.Repeat("é", 200), Author: "Frank Herbert"})
	if len(errs) != 0 {
		t.Errorf("200-char multi-byte name should be valid, got %v", errs)
	}

	errs = BookCreate(model.CreateBookRequest{Name: "é", Author: "Frank Herbert"})
	if errs["Name"] == "" {
		t.Errorf("1-char multi-byte name should be too short, got %v", errs)
	}

	errs = BookCreate(model.CreateBookRequest{Name: strings.Repeat("é", 256), Author: "Frank Herbert"})
	if errs["Name"] == "" {
		t.Errorf("256-char multi-byte name should be too long, got %v", errs)
	}
}

func TestBookUpdate_Partial(t *testing.T) {
	errs := BookUpdate(model.UpdateBookRequest{})
	if len(errs) != 0 {
		t.Errorf("expected no errors for empty update, got %v", errs)
	}

	empty := ""
	errs = BookUpdate(model.UpdateBookRequest{Author: &empty})
	if errs["Author"] == "" {
		t.Errorf("expected Author error for present empty field, got %v", errs)
	}
	if _, ok := errs["Name"]; ok {
		t.Errorf("absent Name should not error, got %v", errs)
	}
}
