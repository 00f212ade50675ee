// Package middleware provides HTTP middleware for the GameVault API.
//
// The middleware package contains reusable middleware components for
// authentication, authorization, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - AdminAuth: Auth plus the admin role requirement for catalog writes
//   - RateLimiter: per-client request rate limiting
//   - RequestID / Logger / Recovery / CORS / Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates Bearer tokens and injects claims into the
// request context:
//
//	handler = middleware.Chain(handler, middleware.Auth(jwtService))
//
// After authentication, handlers can access user info:
//
//	uid := middleware.GetUserID(r.Context())
//
// # Rate Limiting
//
// Rate limiting is keyed by remote IP and sits in the global chain, ahead
// of routing and authentication:
//
//	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
//	handler = middleware.Chain(handler, rl.Middleware())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetClaims(ctx): Returns the full JWT claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
