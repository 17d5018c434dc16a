package client

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotMember is returned when switching to a tenant the user does not belong to.
var ErrNotMember = errors.New("not a member of tenant")

// Session pairs the persisted credential with a client.
type Session struct {
	Store  *Store
	Client *Client
}

// NewSession returns a Session over store and c.
func NewSession(store *Store, c *Client) *Session {
	return &Session{Store: store, Client: c}
}

// RequestContext reads the credential once for the calls that follow.
func (s *Session) RequestContext() RequestContext {
	return s.Store.RequestContext()
}

// LoggedIn reports whether a token is saved.
func (s *Session) LoggedIn() bool {
	return s.Store.Token() != ""
}

func (s *Session) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	resp, err := s.Client.Auth().Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return resp, s.persist(resp)
}

func (s *Session) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	resp, err := s.Client.Auth().Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	return resp, s.persist(resp)
}

func (s *Session) persist(resp *AuthResponse) error {
	if err := s.Store.SetToken(resp.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	tenant := resp.TenantID
	if tenant == "" {
		tenant = DefaultTenantID
	}
	if err := s.Store.SetActiveTenant(tenant); err != nil {
		return fmt.Errorf("save tenant: %w", err)
	}
	return nil
}

// SwitchTenant makes tenantID active after checking the user's memberships.
func (s *Session) SwitchTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	tenants, err := s.Client.Tenants().List(ctx, s.RequestContext())
	if err != nil {
		return nil, err
	}
	for i := range tenants {
		if tenants[i].ID == tenantID {
			if err := s.Store.SetActiveTenant(tenantID); err != nil {
				return nil, fmt.Errorf("save tenant: %w", err)
			}
			return &tenants[i], nil
		}
	}
	return nil, fmt.Errorf("%w %s", ErrNotMember, tenantID)
}

// Logout revokes the token on the server and clears local state. Local
// state is cleared even when the server call fails; a 401 means the token
// was already unusable and is not reported.
func (s *Session) Logout(ctx context.Context) error {
	rc := s.RequestContext()
	var callErr error
	if rc.Token != "" {
		callErr = s.Client.Auth().Logout(ctx, rc)
		if IsUnauthorized(callErr) {
			callErr = nil
		}
	}
	if err := s.Store.ClearToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.Store.ClearActiveTenant(); err != nil {
		return fmt.Errorf("clear tenant: %w", err)
	}
	return callErr
}
