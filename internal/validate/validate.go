// Package validate implements the request-time validation rules that gate
// registration, login and every write endpoint. Each validator is a pure
// function from a request to a field-name → error-message map; an empty map
// means the input is valid.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bookstack/bookstack-api/internal/model"
)

var namePattern = regexp.MustCompile(`^[A-Za-z ]+$`)

// passwordSymbols is the fixed set of symbols a password may (and must)
// draw its special character from.
const passwordSymbols = "@$!%*?&"

const passwordRuleMsg = "password must contain min 8 chars, at least 1 uppercase, 1 lowercase, 1 digit, 1 special char"

// Password reports whether a password satisfies the strength rule:
// at least 8 characters, at least one lowercase letter, one uppercase
// letter, one digit and one symbol from passwordSymbols, built only
// from those character classes.
func Password(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, c):
			symbol = true
		default:
			return false
		}
	}

	return lower && upper && digit && symbol
}

// Email checks that s parses as a bare, syntactically valid email address.
// Deliverability is not checked.
func Email(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}
	// Reject display names ("Ann <ann@x.com>") and addresses without a
	// dotted domain, which mail.ParseAddress would otherwise accept.
	if addr.Address != s {
		return fmt.Errorf("invalid email address")
	}
	at := strings.LastIndex(s, "@")
	if !strings.Contains(s[at+1:], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// UserCreate validates a registration request.
func UserCreate(req model.RegisterRequest) map[string]string {
	errors := make(map[string]string)

	checkName(errors, "first_name", "First name", req.FirstName)
	checkName(errors, "last_name", "Last name", req.LastName)

	if req.Email == "" {
		errors["email_id"] = "email id is required"
	} else if err := Email(req.Email); err != nil {
		errors["email_id"] = err.Error()
	}

	if req.Password == "" {
		errors["password"] = "Password is required"
	} else if !Password(req.Password) {
		errors["password"] = passwordRuleMsg
	}

	if req.Role != "" {
		role := strings.ToLower(req.Role)
		if role != string(model.RoleAdmin) && role != string(model.RoleUser) {
			errors["role"] = "Invalid role"
		}
	}

	return errors
}

// Credentials validates a login request.
func Credentials(req model.LoginRequest) map[string]string {
	errors := make(map[string]string)

	if req.Email == "" {
		errors["email_id"] = "Email Id is required"
	} else if err := Email(req.Email); err != nil {
		errors["email_id"] = err.Error()
	}

	if req.Password == "" {
		errors["password"] = "Password is required"
	} else if !Password(req.Password) {
		errors["password"] = passwordRuleMsg
	}

	return errors
}

// UserUpdate validates a partial user update. Absent fields are not an
// error; present-but-invalid fields are.
func UserUpdate(req model.UpdateUserRequest) map[string]string {
	errors := make(map[string]string)

	if req.FirstName != nil {
		checkName(errors, "first_name", "First name", *req.FirstName)
	}
	if req.LastName != nil {
		checkName(errors, "last_name", "Last name", *req.LastName)
	}
	if req.Email != nil {
		if *req.Email == "" {
			errors["email_id"] = "email id is required"
		} else if err := Email(*req.Email); err != nil {
			errors["email_id"] = err.Error()
		}
	}

	return errors
}

// BookCreate validates a book creation request.
func BookCreate(req model.CreateBookRequest) map[string]string {
	errors := make(map[string]string)
	checkBookName(errors, req.Name)
	checkBookAuthor(errors, req.Author)
	return errors
}

// BookUpdate validates a partial book update.
func BookUpdate(req model.UpdateBookRequest) map[string]string {
	errors := make(map[string]string)
	if req.Name != nil {
		checkBookName(errors, *req.Name)
	}
	if req.Author != nil {
		checkBookAuthor(errors, *req.Author)
	}
	return errors
}

func checkName(errors map[string]string, field, label, value string) {
	if value == "" {
		errors[field] = label + " is required"
	} else if !namePattern.MatchString(value) {
		errors[field] = label + " should only contain alphabets and spaces"
	}
}

func checkBookName(errors map[string]string, name string) {
	// Bounds are in characters, not bytes, so multi-byte titles measure
	// correctly.
	switch {
	case name == "":
		errors["Name"] = "Book name is required"
	case utf8.RuneCountInString(name) < 2:
		errors["Name"] = "Book name must be at least 2 characters long"
	case utf8.RuneCountInString(name) > 255:
		errors["Name"] = "Book name must not exceed 255 characters"
	}
}

func checkBookAuthor(errors map[string]string, author string) {
	if author == "" {
		errors["Author"] = "Author name is required"
	} else if !namePattern.MatchString(author) {
		errors["Author"] = "Author name must contain only alphabets and spaces"
	}
}
