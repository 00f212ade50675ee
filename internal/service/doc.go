// Package service implements the business logic layer for the GameVault API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or model.ProblemDetails
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Domain Rules
//
// The core invariants live here, not in the store:
//
//   - An ownership record is created only for games present in the catalog,
//     at most once per (user, game) pair, and owns that game's play sessions.
//   - Play sessions are reachable only through their parent ownership
//     record; removing the record removes its sessions.
//   - Catalog membership lookups are chunked to the store's id limit
//     (database.MaxMembershipIDs) before fan-out.
//
// # Error Handling
//
// Services return domain-specific errors defined in errors.go:
//
//	var (
//	    ErrGameNotFound = errors.New("game not found")
//	    ErrNotInLibrary = errors.New("game not in library")
//	)
package service
