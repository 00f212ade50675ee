// Package config manages application configuration for the GameVault API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// Load never fails on missing values; call Validate to reject an unusable
// configuration before starting the server.
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - IdentityConfig: external identity provider settings
//   - RateLimitConfig: per-client request throttling
//   - MetricsConfig: Prometheus exposition
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production, or test
//	CORS_ALLOWED_ORIGINS   - comma-separated list of allowed origins
//	DB_HOST, DB_PORT       - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE
//	DB_USER, DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH   - RSA private key PEM for signing
//	JWT_PUBLIC_KEY_PATH    - RSA public key PEM for validation
//	JWT_EXPIRATION_MINS    - token lifetime in minutes
//	JWT_ISSUER             - iss claim value
//	IDENTITY_BASE_URL      - identity provider endpoint
//	IDENTITY_API_KEY       - identity provider API key
//	RATE_LIMIT_ENABLED     - enable per-client throttling
//	RATE_LIMIT_PER_MINUTE  - sustained requests per minute per client
//	RATE_LIMIT_BURST       - burst allowance
//	METRICS_ENABLED        - expose GET /metrics
package config
