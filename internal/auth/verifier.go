package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrMissingToken = errors.New("authentication token missing")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// User is the identity the auth provider resolves a bearer token to.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// HTTPVerifier resolves tokens against the auth provider's user endpoint.
type HTTPVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPVerifier(baseURL, apiKey string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, err
		}
		return &user, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}
}

var _ Verifier = (*HTTPVerifier)(nil)
