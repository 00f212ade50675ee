// Package database provides the document store abstraction for GameVault.
//
// This package defines the Database interface that abstracts SurrealDB
// operations, keeping business logic independent of the concrete store.
//
// # Interface Design
//
// The Database interface provides three query methods:
//   - Query: Returns multiple results (for SELECT queries returning lists)
//   - QueryOne: Returns a single result (for SELECT by ID)
//   - Execute: No return value (for CREATE/UPDATE/DELETE mutations)
//
// # Atomicity
//
// The store is atomic per single-document operation only. The sole
// multi-statement primitive is the batch transaction in transaction.go, used
// for the library remove-game cascade. Nothing else in GameVault spans
// documents atomically; multi-step reads tolerate interleaved writes.
//
// # Membership queries
//
// The store caps "id is one of these" filters at MaxMembershipIDs ids per
// query. Repositories reject larger lists with ErrLimitExceeded; callers that
// need more must chunk (see the service layer's catalog resolution).
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//   - ErrLimitExceeded: Membership filter exceeded MaxMembershipIDs
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// MaxMembershipIDs is the store's hard cap on the number of ids accepted by
// a single id-membership query. This is a collaborator constraint, not a
// tuning knob.
const MaxMembershipIDs = 10

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")

	// ErrLimitExceeded indicates a membership query was given more ids than
	// the store accepts.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// Database defines the interface for document store operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
