// Package jwt provides JSON Web Token utilities for the GameVault API.
//
// Tokens are RSA-signed (RS256). The identity provider authenticates
// credentials; this package mints and verifies the application's own tokens
// carrying uid, email, and role.
//
// # Token Generation
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "gamevault-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    UserID: uid,
//	    Email:  email,
//	    Role:   "user",
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	uid := claims.UserID
//
// A service constructed with only PublicKeyPath can validate but not sign,
// for deployments where signing happens elsewhere.
//
// # Keys
//
// GenerateKeyPair writes a fresh PEM-encoded RSA key pair to disk; the
// admin-token command uses it to bootstrap local setups.
package jwt
