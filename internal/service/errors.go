package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrIdentityProvider   = errors.New("identity provider request failed")
)

// ===== Catalog Errors =====
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameIDTaken     = errors.New("a game with this id already exists")
	ErrCatalogConflict = errors.New("catalog entry conflict")
)

// ===== Library Errors =====
var (
	ErrAlreadyInLibrary = errors.New("game already in library")
	ErrNotInLibrary     = errors.New("game not in library")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("play session not found")
)
