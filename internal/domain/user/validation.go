package user

import (
	"regexp"
	"sort"
	"strings"
)

// Form field names, used as keys in ValidationError.Fields.
const (
	FieldUserName        = "userName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError carries per-field messages for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidEmail matches local-part@domain.tld with a TLD of 2+ letters.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type RegisterForm struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptedTerms   bool   `json:"acceptedTerms"`
}

// Validate checks every field and returns all failures at once, or nil.
func (f RegisterForm) Validate() *ValidationError {
	errs := make(map[string]string)

	if strings.TrimSpace(f.UserName) == "" {
		errs[FieldUserName] = "Username is required."
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required."
	case !IsValidEmail(email):
		errs[FieldEmail] = "Please enter a valid email."
	}

	switch {
	case strings.TrimSpace(f.Password) == "":
		errs[FieldPassword] = "Password is required."
	case len(f.Password) < MinPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters long."
	}

	switch {
	case strings.TrimSpace(f.ConfirmPassword) == "":
		errs[FieldConfirmPassword] = "Please confirm your password."
	case len(f.ConfirmPassword) < MinPasswordLength:
		errs[FieldConfirmPassword] = "Password must be at least 6 characters long."
	}
	if f.Password != f.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match."
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate stops at the first failing field, or returns nil.
func (f LoginForm) Validate() *ValidationError {
	fail := func(field, msg string) *ValidationError {
		return &ValidationError{Fields: map[string]string{field: msg}}
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		return fail(FieldEmail, "Please enter your Email.")
	}
	if !IsValidEmail(email) {
		return fail(FieldEmail, "Please enter a valid email.")
	}

	password := strings.TrimSpace(f.Password)
	if password == "" {
		return fail(FieldPassword, "Please enter your Password.")
	}
	if len(password) < MinPasswordLength {
		return fail(FieldPassword, "Password must be at least 6 characters long.")
	}
	return nil
}
