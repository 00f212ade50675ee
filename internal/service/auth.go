package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gamevault/api/internal/identity"
	"github.com/gamevault/api/internal/model"
	"github.com/gamevault/api/pkg/jwt"
)

// IdentityProvider defines the external identity provider interface
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*identity.Account, error)
	SignIn(ctx context.Context, email, password string) (*identity.Account, error)
	SendPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error
}

// UserRepositoryInterface defines the user profile storage interface
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// TokenSigner mints application tokens for verified identities
type TokenSigner interface {
	Sign(claims jwt.Claims) (string, error)
}

// AuthResult is a signed application token together with the user it
// authenticates.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService orchestrates registration and login across the external
// identity provider, the profile store, and the app token signer.
type AuthService struct {
	provider IdentityProvider
	users    UserRepositoryInterface
	signer   TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(provider IdentityProvider, users UserRepositoryInterface, signer TokenSigner) *AuthService {
	return &AuthService{provider: provider, users: users, signer: signer}
}

// Register creates a provider identity, stores the profile document, and
// returns a signed app token. The username is claimed after the provider
// accepts the credentials; a profile write failure after provider sign-up is
// logged and surfaced, with no compensation against the provider.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	account, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, ErrEmailAlreadyExists
		}
		slog.Error("provider sign-up failed", "error", err)
		return nil, ErrIdentityProvider
	}

	user := &model.User{
		UID:      account.UID,
		Email:    account.Email,
		Username: req.Username,
	}
	if err := s.users.Create(ctx, user); err != nil {
		slog.Error("profile create failed after provider sign-up", "uid", account.UID, "error", err)
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials with the provider and returns a signed app
// token. A missing profile document still authenticates; the profile is
// synthesized from the provider account.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	account, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		slog.Error("provider sign-in failed", "error", err)
		return nil, ErrIdentityProvider
	}

	user, err := s.users.GetByUID(ctx, account.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &model.User{UID: account.UID, Email: account.Email}
	}

	return s.issueToken(user)
}

// Me retrieves the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CheckUsername reports whether a username is valid and available
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	if msg := model.ValidateUsername(username); msg != "" {
		return false, model.NewValidationError([]model.FieldError{
			{Field: "username", Message: msg},
		})
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// ForgotPassword asks the provider to email a reset code. Unknown emails are
// reported as success so the endpoint does not reveal which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil
		}
		slog.Error("password reset request failed", "error", err)
		return ErrIdentityProvider
	}
	return nil
}

// ResetPassword redeems a reset code for a new password
func (s *AuthService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return model.NewValidationError(fieldErrors)
	}

	if err := s.provider.ConfirmPasswordReset(ctx, req.OobCode, req.NewPassword); err != nil {
		if errors.Is(err, identity.ErrInvalidResetCode) {
			return ErrInvalidResetCode
		}
		slog.Error("password reset failed", "error", err)
		return ErrIdentityProvider
	}
	return nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := s.signer.Sign(jwt.Claims{
		UserID: user.UID,
		Email:  user.Email,
		Role:   "user",
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
