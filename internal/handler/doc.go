// Package handler provides HTTP request handlers for the GameVault API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (authentication, catalog, library,
// sessions).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service dependency
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details via MapServiceError
//
// # Response Format
//
// Successful responses wrap their payload in a data envelope:
//
//	{"data": {...}}
//
// Failures are Problem Details documents with a stable category code.
//
// # Authentication
//
// Most handlers require authentication via JWT tokens. The auth middleware
// extracts the user ID and makes it available via middleware.GetUserID(ctx);
// catalog write endpoints additionally pass through AdminAuth.
package handler
