package client

// Entity records as the API returns them. Timestamps are epoch milliseconds.

type Account struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id,omitempty"`
	Name      string  `json:"name"`
	Website   *string `json:"website"`
	Phone     *string `json:"phone"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type AccountInput struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

type AccountPatch struct {
	Name    *string `json:"name,omitempty"`
	Website *string `json:"website,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

type Contact struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id,omitempty"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Title     *string `json:"title"`
	AccountID *string `json:"account_id"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type ContactInput struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Title     *string `json:"title,omitempty"`
	AccountID *string `json:"account_id,omitempty"`
}

type ContactPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Title     *string `json:"title,omitempty"`
	AccountID *string `json:"account_id,omitempty"`
}

type Deal struct {
	ID        string   `json:"id"`
	TenantID  string   `json:"tenant_id,omitempty"`
	Title     string   `json:"title"`
	Amount    *float64 `json:"amount"`
	Currency  *string  `json:"currency"`
	Stage     string   `json:"stage"`
	CloseDate *int64   `json:"close_date"`
	AccountID *string  `json:"account_id"`
	ContactID *string  `json:"contact_id"`
	CreatedBy *string  `json:"created_by,omitempty"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

type DealInput struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title"`
	Amount    *float64 `json:"amount,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Stage     string   `json:"stage,omitempty"`
	CloseDate *int64   `json:"close_date,omitempty"`
	AccountID *string  `json:"account_id,omitempty"`
	ContactID *string  `json:"contact_id,omitempty"`
}

type DealPatch struct {
	Title     *string  `json:"title,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Stage     *string  `json:"stage,omitempty"`
	CloseDate *int64   `json:"close_date,omitempty"`
	AccountID *string  `json:"account_id,omitempty"`
	ContactID *string  `json:"contact_id,omitempty"`
}

type Lead struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id,omitempty"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Source    *string `json:"source"`
	Status    string  `json:"status"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type LeadInput struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Source  *string `json:"source,omitempty"`
	Status  string  `json:"status,omitempty"`
}

type LeadPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Source  *string `json:"source,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// LeadConversion is returned by converting a lead.
type LeadConversion struct {
	AccountID *string `json:"account_id"`
	ContactID string  `json:"contact_id"`
}

// Activity statuses.
const (
	ActivityPending = "pendiente"
	ActivityDone    = "completada"
)

type Activity struct {
	ID                  string  `json:"id"`
	TenantID            string  `json:"tenant_id,omitempty"`
	Type                string  `json:"type"`
	Title               string  `json:"title"`
	Status              string  `json:"status"`
	DueDate             *int64  `json:"due_date"`
	RemindBeforeMinutes *int    `json:"remind_before_minutes"`
	Notes               *string `json:"notes"`
	AccountID           *string `json:"account_id"`
	ContactID           *string `json:"contact_id"`
	DealID              *string `json:"deal_id"`
	LeadID              *string `json:"lead_id"`
	CreatedBy           *string `json:"created_by,omitempty"`
	CreatedAt           int64   `json:"created_at"`
	UpdatedAt           int64   `json:"updated_at"`
}

type ActivityInput struct {
	ID                  string  `json:"id,omitempty"`
	Type                string  `json:"type,omitempty"`
	Title               string  `json:"title"`
	Status              string  `json:"status,omitempty"`
	DueDate             *int64  `json:"due_date,omitempty"`
	RemindBeforeMinutes *int    `json:"remind_before_minutes,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	AccountID           *string `json:"account_id,omitempty"`
	ContactID           *string `json:"contact_id,omitempty"`
	DealID              *string `json:"deal_id,omitempty"`
	LeadID              *string `json:"lead_id,omitempty"`
}

type ActivityPatch struct {
	Type                *string `json:"type,omitempty"`
	Title               *string `json:"title,omitempty"`
	Status              *string `json:"status,omitempty"`
	DueDate             *int64  `json:"due_date,omitempty"`
	RemindBeforeMinutes *int    `json:"remind_before_minutes,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	AccountID           *string `json:"account_id,omitempty"`
	ContactID           *string `json:"contact_id,omitempty"`
	DealID              *string `json:"deal_id,omitempty"`
	LeadID              *string `json:"lead_id,omitempty"`
}

type Note struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id,omitempty"`
	Body      string  `json:"body"`
	AccountID *string `json:"account_id"`
	ContactID *string `json:"contact_id"`
	DealID    *string `json:"deal_id"`
	LeadID    *string `json:"lead_id"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type NoteInput struct {
	ID        string  `json:"id,omitempty"`
	Body      string  `json:"body"`
	AccountID *string `json:"account_id,omitempty"`
	ContactID *string `json:"contact_id,omitempty"`
	DealID    *string `json:"deal_id,omitempty"`
	LeadID    *string `json:"lead_id,omitempty"`
}

type NotePatch struct {
	Body      *string `json:"body,omitempty"`
	AccountID *string `json:"account_id,omitempty"`
	ContactID *string `json:"contact_id,omitempty"`
	DealID    *string `json:"deal_id,omitempty"`
	LeadID    *string `json:"lead_id,omitempty"`
}

// id accessors let Resource assign client ids to create inputs.

func (in AccountInput) GetID() string                { return in.ID }
func (in AccountInput) WithID(id string) AccountInput { in.ID = id; return in }
func (in ContactInput) GetID() string                { return in.ID }
func (in ContactInput) WithID(id string) ContactInput { in.ID = id; return in }
func (in DealInput) GetID() string                   { return in.ID }
func (in DealInput) WithID(id string) DealInput       { in.ID = id; return in }
func (in LeadInput) GetID() string                   { return in.ID }
func (in LeadInput) WithID(id string) LeadInput       { in.ID = id; return in }
func (in ActivityInput) GetID() string               { return in.ID }
func (in ActivityInput) WithID(id string) ActivityInput {
	in.ID = id
	return in
}
func (in NoteInput) GetID() string             { return in.ID }
func (in NoteInput) WithID(id string) NoteInput { in.ID = id; return in }

// Tenant is a tenant the caller belongs to.
type Tenant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	CreatedBy *string `json:"created_by"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// Member is a user of the active tenant.
type Member struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// User is the authenticated user.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	TenantID  string `json:"tenant_id"`
	User      User   `json:"user"`
}
