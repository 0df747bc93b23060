package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gajendran57/GoalGrid/internal/apperr"
	"github.com/Gajendran57/GoalGrid/internal/model"
)

// AuthResponse is the backend's login/register reply.
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Register creates an account and returns the issued token and user.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth_register", "/api/auth/register", body, &out); err != nil {
		return nil, asAuthError(err)
	}
	return &out, nil
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth_login", "/api/auth/login", body, &out); err != nil {
		return nil, asAuthError(err)
	}
	return &out, nil
}

// Me validates the current token and returns the identity behind it.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "auth_me", "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// asAuthError reshapes backend rejections on the auth endpoints into
// form-level authentication errors. Register conflicts come back as 400,
// bad credentials as 401; both carry the message the user should see.
func asAuthError(err error) error {
	if apperr.IsAuthentication(err) {
		return err
	}
	var nwErr *apperr.NetworkError
	if errors.As(err, &nwErr) {
		var stErr *statusError
		if errors.As(nwErr.Err, &stErr) && stErr.StatusCode >= 400 && stErr.StatusCode < 500 {
			return &apperr.AuthenticationError{Message: stErr.Error()}
		}
	}
	return err
}
