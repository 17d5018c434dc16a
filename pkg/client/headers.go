package client

import (
	"net/http"
	"strings"
)

// TenantHeader carries the active tenant on every request.
const TenantHeader = "X-Tenant-Id"

// RequestContext is the credential a call is made with. It is passed
// explicitly so nothing below the caller reads shared state.
type RequestContext struct {
	Token    string
	TenantID string
}

// BuildHeaders returns the headers for a request. Authorization is present
// only with a token and the tenant header only with a tenant. Values in
// extra override generated ones.
func BuildHeaders(rc RequestContext, extra http.Header) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if token := strings.TrimSpace(rc.Token); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	if tenant := strings.TrimSpace(rc.TenantID); tenant != "" {
		h.Set(TenantHeader, tenant)
	}
	for k, vs := range extra {
		h.Del(k)
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	return h
}
