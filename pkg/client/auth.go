package client

import (
	"context"
	"net/http"
)

// AuthClient calls the /auth endpoints.
type AuthClient struct {
	client *Client
}

func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

// Credentials are register and login inputs. Name is used by register only.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (a *AuthClient) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.client.Do(ctx, RequestContext{}, http.MethodPost, "/auth/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	body := Credentials{Email: creds.Email, Password: creds.Password}
	if err := a.client.Do(ctx, RequestContext{}, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Me(ctx context.Context, rc RequestContext) (*User, error) {
	var out User
	if err := a.client.Do(ctx, rc, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the token carried by rc.
func (a *AuthClient) Logout(ctx context.Context, rc RequestContext) error {
	return a.client.Do(ctx, rc, http.MethodPost, "/auth/logout", nil, nil)
}
