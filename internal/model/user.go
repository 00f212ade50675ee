package model

import (
	"regexp"
	"strings"
	"time"
)

// User represents a verified identity and its profile document. Identities
// are issued by the external provider; this service references them by uid
// and never mutates provider state directly.
type User struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateUsername checks username format rules. Returns "" when valid.
func ValidateUsername(username string) string {
	u := strings.TrimSpace(username)
	if len(u) < 3 {
		return "username must be at least 3 characters"
	}
	if len(u) > 20 {
		return "username must be at most 20 characters"
	}
	if !usernamePattern.MatchString(u) {
		return "username must start with a letter and can contain only letters, numbers, underscore"
	}
	return ""
}

// RegisterRequest represents the register endpoint request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() []FieldError {
	var errors []FieldError

	if !strings.Contains(r.Email, "@") || len(r.Email) > 254 {
		errors = append(errors, FieldError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 6 {
		errors = append(errors, FieldError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	}

	if msg := ValidateUsername(r.Username); msg != "" {
		errors = append(errors, FieldError{
			Field:   "username",
			Message: msg,
		})
	}

	return errors
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// ForgotPasswordRequest represents the forgot-password request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the reset-password request body
type ResetPasswordRequest struct {
	OobCode     string `json:"oob_code"`
	NewPassword string `json:"new_password"`
}

// Validate validates the reset password request
func (r *ResetPasswordRequest) Validate() []FieldError {
	var errors []FieldError

	if r.OobCode == "" {
		errors = append(errors, FieldError{Field: "oob_code", Message: "oob_code is required"})
	}
	if len(r.NewPassword) < 6 {
		errors = append(errors, FieldError{
			Field:   "new_password",
			Message: "password must be at least 6 characters",
		})
	}

	return errors
}
