package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLoginPersistsCredential(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"tok","expires_at":1,"tenant_id":"demo","user":{"id":"u1","email":"a@b.co"}}`))
	})
	s := NewSession(NewStore(NewMemoryKV()), c)

	resp, err := s.Login(context.Background(), Credentials{Email: "a@b.co", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, RequestContext{Token: "tok", TenantID: "demo"}, s.RequestContext())
}

func TestSessionSwitchTenant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"demo","name":"Demo","role":"member"},{"id":"t2","name":"Two","role":"owner"}]`))
	})
	store := NewStore(NewMemoryKV())
	require.NoError(t, store.SetToken("tok"))
	s := NewSession(store, c)

	tenant, err := s.SwitchTenant(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, "owner", tenant.Role)
	assert.Equal(t, "t2", store.ActiveTenant())

	_, err = s.SwitchTenant(context.Background(), "t3")
	assert.ErrorIs(t, err, ErrNotMember)
	assert.Equal(t, "t2", store.ActiveTenant())
}

func TestSessionLogoutClearsStateOnUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"token revoked"}`))
	})
	store := NewStore(NewMemoryKV())
	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SetActiveTenant("t2"))
	s := NewSession(store, c)

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.LoggedIn())
	assert.Equal(t, DefaultTenantID, store.ActiveTenant())
}

func TestSessionLogoutReportsServerFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal_error"}`))
	})
	store := NewStore(NewMemoryKV())
	require.NoError(t, store.SetToken("tok"))
	s := NewSession(store, c)

	require.Error(t, s.Logout(context.Background()))
	assert.False(t, s.LoggedIn())
}
