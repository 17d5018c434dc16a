// Package client is a Go client for the CRM API. It keeps the bearer token
// and active tenant in a local store and attaches both to every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// DefaultTimeout bounds a call whose context has no earlier deadline.
const DefaultTimeout = 15 * time.Second

// baseURLEnv lists the environment variables consulted for the API base URL.
var baseURLEnv = []string{"EXPO_PUBLIC_API_BASE_URL", "EXPO_PUBLIC_API_URL", "CRM_API_BASE_URL"}

// Client performs authenticated JSON calls against the API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides base URL resolution.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(strings.TrimSpace(u), "/") }
}

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New builds a Client.
func New(opts ...Option) *Client {
	c := &Client{timeout: DefaultTimeout, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = ResolveBaseURL(os.Getenv, runtime.GOOS)
	}
	return c
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveBaseURL picks the first configured base URL, falling back to the
// local development server. Android emulators reach the host at 10.0.2.2.
func ResolveBaseURL(getenv func(string) string, goos string) string {
	for _, key := range baseURLEnv {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	if goos == "android" {
		return "http://10.0.2.2:4000"
	}
	return "http://127.0.0.1:4000"
}

// errorBody is the server's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Do sends one request and decodes the JSON response into out. There is no
// retry. A 204 response, a nil out or an unparsable body leave out untouched.
func (c *Client) Do(ctx context.Context, rc RequestContext, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header = BuildHeaders(rc, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Status: 0, Code: CodeNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: 0, Code: CodeNetwork, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: eb.Error, Message: msg}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		decodeInto(raw, out)
	}
	return nil
}

// decodeInto decodes raw into a fresh value and stores it in out only when
// the whole body decodes, so a mismatched body leaves out untouched.
func decodeInto(raw []byte, out any) {
	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return
	}
	tmp := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return
	}
	dst.Elem().Set(tmp.Elem())
}
