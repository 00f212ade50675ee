package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider error sentinels. Callers branch on these; raw provider payloads
// never leave this package.
var (
	ErrEmailExists        = errors.New("email already registered with provider")
	ErrInvalidCredentials = errors.New("provider rejected credentials")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrProvider           = errors.New("identity provider request failed")
)

// Account is the provider's view of a verified identity
type Account struct {
	UID   string
	Email string
}

// Config holds identity provider client configuration
type Config struct {
	BaseURL string
	APIKey  string
}

// Client talks to the external identity provider's REST API. The provider
// owns credentials end to end; this service never sees a password hash.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new identity provider client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetHTTPClient overrides the HTTP client, for tests
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SignUp creates a new identity with the provider
func (c *Client) SignUp(ctx context.Context, email, password string) (*Account, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	if err := c.post(ctx, "accounts:signUp", payload, &result); err != nil {
		return nil, err
	}
	return &Account{UID: result.LocalID, Email: result.Email}, nil
}

// SignIn verifies credentials with the provider
func (c *Client) SignIn(ctx context.Context, email, password string) (*Account, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	if err := c.post(ctx, "accounts:signInWithPassword", payload, &result); err != nil {
		return nil, err
	}
	return &Account{UID: result.LocalID, Email: result.Email}, nil
}

// SendPasswordReset asks the provider to email a password reset code
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "accounts:sendOobCode", payload, nil)
}

// ConfirmPasswordReset redeems a reset code for a new password
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	payload := map[string]interface{}{
		"oobCode":     oobCode,
		"newPassword": newPassword,
	}
	return c.post(ctx, "accounts:resetPassword", payload, nil)
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return mapProviderError(respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", ErrProvider, err)
		}
	}
	return nil
}

// mapProviderError translates the provider's error codes to sentinels. The
// provider reports a machine code in error.message; anything unrecognized
// collapses to ErrProvider.
func mapProviderError(body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ErrProvider
	}

	switch parsed.Error.Message {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return ErrInvalidCredentials
	case "INVALID_OOB_CODE", "EXPIRED_OOB_CODE":
		return ErrInvalidResetCode
	default:
		return ErrProvider
	}
}
