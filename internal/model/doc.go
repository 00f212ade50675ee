// Package model defines the domain types for GameVault: catalog entries,
// ownership records, play sessions, user profiles, request/response shapes,
// and the ProblemDetails error format shared by all handlers.
package model
