package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithTimeout(2*time.Second))
}

func TestDoNotFoundUsesErrorAsMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	err := c.Do(context.Background(), RequestContext{}, http.MethodGet, "/accounts/x", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "not found", err.Error())
}

func TestDoErrorPrefersMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"account_has_contacts","message":"account has linked contacts"}`))
	})

	err := c.Do(context.Background(), RequestContext{}, http.MethodDelete, "/accounts/a1", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "account_has_contacts", apiErr.Code)
	assert.Equal(t, "account has linked contacts", apiErr.Message)
	assert.True(t, IsConflict(err))
}

func TestDoErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Do(context.Background(), RequestContext{}, http.MethodGet, "/accounts", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "HTTP 502", err.Error())
}

func TestDoNoContentSkipsParse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out := map[string]any{"untouched": true}
	require.NoError(t, c.Do(context.Background(), RequestContext{}, http.MethodDelete, "/notes/n1", nil, &out))
	assert.Equal(t, map[string]any{"untouched": true}, out)
}

func TestDoUnparsableSuccessIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	})

	var out Account
	require.NoError(t, c.Do(context.Background(), RequestContext{}, http.MethodGet, "/accounts/a1", nil, &out))
	assert.Empty(t, out.ID)
}

func TestDoSendsHeadersAndBody(t *testing.T) {
	var got *http.Request
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"a1","name":"Acme"}`))
	})

	var out Account
	rc := RequestContext{Token: "tok", TenantID: "t2"}
	require.NoError(t, c.Do(context.Background(), rc, http.MethodPost, "/accounts", map[string]string{"name": "Acme"}, &out))

	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "t2", got.Header.Get(TenantHeader))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Acme", body["name"])
	assert.Equal(t, "a1", out.ID)
}

func TestDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(WithBaseURL(url))
	err := c.Do(context.Background(), RequestContext{}, http.MethodGet, "/health/live", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.True(t, HasCode(err, CodeNetwork))
}

func TestDoDeadlineCancelsHungCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	start := time.Now()
	err := c.Do(context.Background(), RequestContext{}, http.MethodGet, "/accounts", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBuildHeaders(t *testing.T) {
	h := BuildHeaders(RequestContext{}, nil)
	assert.Empty(t, h.Get("Authorization"))
	assert.Empty(t, h.Get(TenantHeader))
	assert.Equal(t, "application/json", h.Get("Accept"))

	extra := http.Header{}
	extra.Set(TenantHeader, "override")
	h = BuildHeaders(RequestContext{Token: "  tok ", TenantID: "demo"}, extra)
	assert.Equal(t, "Bearer tok", h.Get("Authorization"))
	assert.Equal(t, "override", h.Get(TenantHeader))
}

func TestResolveBaseURL(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	assert.Equal(t, "http://127.0.0.1:4000", ResolveBaseURL(env(nil), "linux"))
	assert.Equal(t, "http://10.0.2.2:4000", ResolveBaseURL(env(nil), "android"))
	assert.Equal(t, "https://api.example.com", ResolveBaseURL(env(map[string]string{
		"EXPO_PUBLIC_API_URL": "https://other.example.com",
		"EXPO_PUBLIC_API_BASE_URL": "https://api.example.com/",
	}), "linux"))
	assert.Equal(t, "http://crm:4000", ResolveBaseURL(env(map[string]string{"CRM_API_BASE_URL": "http://crm:4000"}), "android"))
}

func TestCreateAssignsIDAndRetriesConflict(t *testing.T) {
	var calls atomic.Int32
	var ids []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in AccountInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		ids = append(ids, in.ID)
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"id_conflict","message":"id already exists"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Account{ID: in.ID, Name: in.Name})
	})

	got, err := c.Accounts().Create(context.Background(), RequestContext{}, AccountInput{Name: "Acme"})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, ids[1], got.ID)
}

func TestCreateWithCallerIDDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"id_conflict"}`))
	})

	_, err := c.Accounts().Create(context.Background(), RequestContext{}, AccountInput{ID: "a1", Name: "Acme"})
	require.Error(t, err)
	assert.True(t, HasCode(err, "id_conflict"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestListEncodesOptions(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"d1","title":"Big","stage":"ganado"}]`))
	})

	deals, err := c.Deals().List(context.Background(), RequestContext{}, ListOptions{
		Query:   "big",
		Limit:   10,
		Filters: map[string]string{"stage": "ganado", "account_id": ""},
	})
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "limit=10&q=big&stage=ganado", query)
}

func TestLeadConvert(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		_, _ = w.Write([]byte(`{"account_id":null,"contact_id":"c1"}`))
	})

	res, err := c.Leads().Convert(context.Background(), RequestContext{}, "l1")
	require.NoError(t, err)
	assert.Equal(t, "POST /leads/l1/convert", path)
	assert.Nil(t, res.AccountID)
	assert.Equal(t, "c1", res.ContactID)
}

func TestAllPagesUntilShortPage(t *testing.T) {
	var offsets []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = w.Write([]byte(`[{"id":"x1"},{"id":"x2"}]`))
		case "2":
			_, _ = w.Write([]byte(`[{"id":"x3"},{"id":"x4"}]`))
		default:
			_, _ = w.Write([]byte(`[{"id":"x5"}]`))
		}
	})

	items, err := c.Activities().All(context.Background(), RequestContext{}, ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "x5", items[4].ID)
	assert.Equal(t, []string{"", "2", "4"}, offsets)
}

func TestDoMismatchedBodyLeavesOutUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"a1","name":"Acme","created_at":"yesterday"}`))
	})

	out := Account{ID: "keep", Name: "Kept"}
	require.NoError(t, c.Do(context.Background(), RequestContext{}, http.MethodGet, "/accounts/a1", nil, &out))
	assert.Equal(t, Account{ID: "keep", Name: "Kept"}, out)
}
