package handler

import (
	"errors"

	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API. Services that already
// built a ProblemDetails (validation failures) pass through unchanged.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrGameNotFound):
		return model.NewNotFoundError("game")
	case errors.Is(err, service.ErrNotInLibrary):
		return model.NewNotFoundError("library entry")
	case errors.Is(err, service.ErrSessionNotFound):
		return model.NewNotFoundError("play session")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadyInLibrary),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrGameIDTaken),
		errors.Is(err, service.ErrCatalogConflict):
		return model.NewConflictError(err.Error())

	// ===== Reset Code Errors → 400 =====
	case errors.Is(err, service.ErrInvalidResetCode):
		return model.NewBadRequestError(err.Error())

	// ===== Provider/External Errors → 502 =====
	case errors.Is(err, service.ErrIdentityProvider):
		return model.NewExternalServiceError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
