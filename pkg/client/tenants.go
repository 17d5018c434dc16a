package client

import (
	"context"
	"net/http"
)

// TenantClient calls the /tenants endpoints.
type TenantClient struct {
	client *Client
}

func (c *Client) Tenants() *TenantClient {
	return &TenantClient{client: c}
}

// TenantInput creates a tenant. An empty ID lets the server assign one.
type TenantInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// MemberInput adds an existing user to the active tenant.
type MemberInput struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// List returns the caller's memberships. The tenant header is not needed.
func (t *TenantClient) List(ctx context.Context, rc RequestContext) ([]Tenant, error) {
	var out []Tenant
	if err := t.client.Do(ctx, rc, http.MethodGet, "/tenants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TenantClient) Create(ctx context.Context, rc RequestContext, input TenantInput) (*Tenant, error) {
	var out Tenant
	if err := t.client.Do(ctx, rc, http.MethodPost, "/tenants", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TenantClient) Current(ctx context.Context, rc RequestContext) (*Tenant, error) {
	var out Tenant
	if err := t.client.Do(ctx, rc, http.MethodGet, "/tenants/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TenantClient) Members(ctx context.Context, rc RequestContext) ([]Member, error) {
	var out []Member
	if err := t.client.Do(ctx, rc, http.MethodGet, "/tenants/current/members", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TenantClient) AddMember(ctx context.Context, rc RequestContext, input MemberInput) (*Member, error) {
	var out Member
	if err := t.client.Do(ctx, rc, http.MethodPost, "/tenants/current/members", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
