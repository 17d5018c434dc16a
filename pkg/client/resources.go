package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// NewID returns a time ordered identifier for client created records.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Identifiable is implemented by create inputs.
type Identifiable[C any] interface {
	GetID() string
	WithID(id string) C
}

// ListOptions are the list query parameters. Filters holds per-resource keys
// such as account_id, stage or status.
type ListOptions struct {
	Query   string
	Limit   int
	Offset  int
	Filters map[string]string
}

func (o ListOptions) encode() string {
	v := url.Values{}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	for k, val := range o.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Resource is the CRUD client for one entity collection.
type Resource[T any, C Identifiable[C], P any] struct {
	client *Client
	path   string
}

// NewResource returns a Resource rooted at path, e.g. "/accounts".
func NewResource[T any, C Identifiable[C], P any](c *Client, path string) *Resource[T, C, P] {
	return &Resource[T, C, P]{client: c, path: path}
}

func (r *Resource[T, C, P]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T, C, P]) List(ctx context.Context, rc RequestContext, opts ListOptions) ([]T, error) {
	var out []T
	if err := r.client.Do(ctx, rc, http.MethodGet, r.path+opts.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxPageSize is the largest page the server returns.
const MaxPageSize = 500

// All lists every matching record, paging until the server returns a short
// page. opts.Limit sets the page size and Offset the starting point.
func (r *Resource[T, C, P]) All(ctx context.Context, rc RequestContext, opts ListOptions) ([]T, error) {
	if opts.Limit <= 0 || opts.Limit > MaxPageSize {
		opts.Limit = MaxPageSize
	}
	var all []T
	for {
		page, err := r.List(ctx, rc, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < opts.Limit {
			return all, nil
		}
		opts.Offset += len(page)
	}
}

func (r *Resource[T, C, P]) Get(ctx context.Context, rc RequestContext, id string) (*T, error) {
	var out T
	if err := r.client.Do(ctx, rc, http.MethodGet, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores input. Without an id a client id is generated, and a
// collision on that generated id is retried once with a fresh one.
func (r *Resource[T, C, P]) Create(ctx context.Context, rc RequestContext, input C) (*T, error) {
	generated := input.GetID() == ""
	if generated {
		input = input.WithID(NewID())
	}
	var out T
	err := r.client.Do(ctx, rc, http.MethodPost, r.path, input, &out)
	if err != nil && generated && HasCode(err, "id_conflict") {
		input = input.WithID(NewID())
		err = r.client.Do(ctx, rc, http.MethodPost, r.path, input, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, P]) Update(ctx context.Context, rc RequestContext, id string, patch P) error {
	return r.client.Do(ctx, rc, http.MethodPatch, r.itemPath(id), patch, nil)
}

func (r *Resource[T, C, P]) Delete(ctx context.Context, rc RequestContext, id string) error {
	return r.client.Do(ctx, rc, http.MethodDelete, r.itemPath(id), nil, nil)
}

type (
	AccountResource  = Resource[Account, AccountInput, AccountPatch]
	ContactResource  = Resource[Contact, ContactInput, ContactPatch]
	DealResource     = Resource[Deal, DealInput, DealPatch]
	ActivityResource = Resource[Activity, ActivityInput, ActivityPatch]
	NoteResource     = Resource[Note, NoteInput, NotePatch]
)

// LeadResource adds conversion to the lead collection.
type LeadResource struct {
	*Resource[Lead, LeadInput, LeadPatch]
}

// Convert turns a lead into a contact and, when it names a company, an account.
func (r LeadResource) Convert(ctx context.Context, rc RequestContext, id string) (*LeadConversion, error) {
	var out LeadConversion
	if err := r.client.Do(ctx, rc, http.MethodPost, r.itemPath(id)+"/convert", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Accounts() *AccountResource {
	return NewResource[Account, AccountInput, AccountPatch](c, "/accounts")
}

func (c *Client) Contacts() *ContactResource {
	return NewResource[Contact, ContactInput, ContactPatch](c, "/contacts")
}

func (c *Client) Deals() *DealResource {
	return NewResource[Deal, DealInput, DealPatch](c, "/deals")
}

func (c *Client) Leads() LeadResource {
	return LeadResource{NewResource[Lead, LeadInput, LeadPatch](c, "/leads")}
}

func (c *Client) Activities() *ActivityResource {
	return NewResource[Activity, ActivityInput, ActivityPatch](c, "/activities")
}

func (c *Client) Notes() *NoteResource {
	return NewResource[Note, NoteInput, NotePatch](c, "/notes")
}
