package dto

import "github.com/spec-kit/crm-service/internal/domain"

// Requests. Optional string fields use pointers: an absent field is left
// untouched by PATCH, an empty string clears it.

type CreateAccountRequest struct {
	ID      string  `json:"id" validate:"max=64"`
	Name    string  `json:"name" validate:"required,max=200"`
	Website *string `json:"website" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

type UpdateAccountRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Website *string `json:"website" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

type CreateContactRequest struct {
	ID        string  `json:"id" validate:"max=64"`
	Name      string  `json:"name" validate:"required,max=200"`
	Email     *string `json:"email" validate:"omitempty,max=320"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	AccountID *string `json:"account_id" validate:"omitempty,max=64"`
}

type UpdateContactRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Email     *string `json:"email" validate:"omitempty,max=320"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	AccountID *string `json:"account_id" validate:"omitempty,max=64"`
}

type CreateDealRequest struct {
	ID        string           `json:"id" validate:"max=64"`
	Title     string           `json:"title" validate:"required,max=200"`
	Amount    *float64         `json:"amount" validate:"omitempty,gte=0"`
	Currency  *string          `json:"currency" validate:"omitempty,max=8"`
	Stage     domain.DealStage `json:"stage" validate:"omitempty,oneof=nuevo calificado propuesta negociacion ganado perdido"`
	CloseDate *int64           `json:"close_date"`
	AccountID *string          `json:"account_id" validate:"omitempty,max=64"`
	ContactID *string          `json:"contact_id" validate:"omitempty,max=64"`
}

type UpdateDealRequest struct {
	Title     *string           `json:"title" validate:"omitempty,max=200"`
	Amount    *float64          `json:"amount" validate:"omitempty,gte=0"`
	Currency  *string           `json:"currency" validate:"omitempty,max=8"`
	Stage     *domain.DealStage `json:"stage" validate:"omitempty,oneof=nuevo calificado propuesta negociacion ganado perdido"`
	CloseDate *int64            `json:"close_date"`
	AccountID *string           `json:"account_id" validate:"omitempty,max=64"`
	ContactID *string           `json:"contact_id" validate:"omitempty,max=64"`
}

type CreateLeadRequest struct {
	ID      string            `json:"id" validate:"max=64"`
	Name    string            `json:"name" validate:"required,max=200"`
	Email   *string           `json:"email" validate:"omitempty,max=320"`
	Phone   *string           `json:"phone" validate:"omitempty,max=50"`
	Company *string           `json:"company" validate:"omitempty,max=200"`
	Source  *string           `json:"source" validate:"omitempty,max=100"`
	Status  domain.LeadStatus `json:"status" validate:"omitempty,oneof=nuevo contactado calificado descartado"`
}

type UpdateLeadRequest struct {
	Name    *string            `json:"name" validate:"omitempty,max=200"`
	Email   *string            `json:"email" validate:"omitempty,max=320"`
	Phone   *string            `json:"phone" validate:"omitempty,max=50"`
	Company *string            `json:"company" validate:"omitempty,max=200"`
	Source  *string            `json:"source" validate:"omitempty,max=100"`
	Status  *domain.LeadStatus `json:"status" validate:"omitempty,oneof=nuevo contactado calificado descartado"`
}

type CreateActivityRequest struct {
	ID                  string                `json:"id" validate:"max=64"`
	Type                domain.ActivityType   `json:"type" validate:"omitempty,oneof=call meeting task email"`
	Title               string                `json:"title" validate:"required,max=200"`
	Status              domain.ActivityStatus `json:"status" validate:"omitempty,oneof=pendiente completada"`
	DueDate             *int64                `json:"due_date"`
	RemindBeforeMinutes *int                  `json:"remind_before_minutes" validate:"omitempty,gte=0,max=525600"`
	Notes               *string               `json:"notes"`
	AccountID           *string               `json:"account_id" validate:"omitempty,max=64"`
	ContactID           *string               `json:"contact_id" validate:"omitempty,max=64"`
	DealID              *string               `json:"deal_id" validate:"omitempty,max=64"`
	LeadID              *string               `json:"lead_id" validate:"omitempty,max=64"`
}

type UpdateActivityRequest struct {
	Type                *domain.ActivityType   `json:"type" validate:"omitempty,oneof=call meeting task email"`
	Title               *string                `json:"title" validate:"omitempty,max=200"`
	Status              *domain.ActivityStatus `json:"status" validate:"omitempty,oneof=pendiente completada"`
	DueDate             *int64                 `json:"due_date"`
	RemindBeforeMinutes *int                   `json:"remind_before_minutes" validate:"omitempty,gte=0,max=525600"`
	Notes               *string                `json:"notes"`
	AccountID           *string                `json:"account_id" validate:"omitempty,max=64"`
	ContactID           *string                `json:"contact_id" validate:"omitempty,max=64"`
	DealID              *string                `json:"deal_id" validate:"omitempty,max=64"`
	LeadID              *string                `json:"lead_id" validate:"omitempty,max=64"`
}

type CreateNoteRequest struct {
	ID        string  `json:"id" validate:"max=64"`
	Body      string  `json:"body" validate:"required"`
	AccountID *string `json:"account_id" validate:"omitempty,max=64"`
	ContactID *string `json:"contact_id" validate:"omitempty,max=64"`
	DealID    *string `json:"deal_id" validate:"omitempty,max=64"`
	LeadID    *string `json:"lead_id" validate:"omitempty,max=64"`
}

type UpdateNoteRequest struct {
	Body      *string `json:"body"`
	AccountID *string `json:"account_id" validate:"omitempty,max=64"`
	ContactID *string `json:"contact_id" validate:"omitempty,max=64"`
	DealID    *string `json:"deal_id" validate:"omitempty,max=64"`
	LeadID    *string `json:"lead_id" validate:"omitempty,max=64"`
}

// Responses carry every column; optional values serialise as null.

type AccountResponse struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Name      string  `json:"name"`
	Website   *string `json:"website"`
	Phone     *string `json:"phone"`
	CreatedBy *string `json:"created_by"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type ContactResponse struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Title     *string `json:"title"`
	AccountID *string `json:"account_id"`
	CreatedBy *string `json:"created_by"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type DealResponse struct {
	ID        string           `json:"id"`
	TenantID  string           `json:"tenant_id"`
	Title     string           `json:"title"`
	Amount    *float64         `json:"amount"`
	Currency  *string          `json:"currency"`
	Stage     domain.DealStage `json:"stage"`
	CloseDate *int64           `json:"close_date"`
	AccountID *string          `json:"account_id"`
	ContactID *string          `json:"contact_id"`
	CreatedBy *string          `json:"created_by"`
	CreatedAt int64            `json:"created_at"`
	UpdatedAt int64            `json:"updated_at"`
}

type LeadResponse struct {
	ID        string            `json:"id"`
	TenantID  string            `json:"tenant_id"`
	Name      string            `json:"name"`
	Email     *string           `json:"email"`
	Phone     *string           `json:"phone"`
	Company   *string           `json:"company"`
	Source    *string           `json:"source"`
	Status    domain.LeadStatus `json:"status"`
	CreatedBy *string           `json:"created_by"`
	CreatedAt int64             `json:"created_at"`
	UpdatedAt int64             `json:"updated_at"`
}

type ActivityResponse struct {
	ID                  string                `json:"id"`
	TenantID            string                `json:"tenant_id"`
	Type                domain.ActivityType   `json:"type"`
	Title               string                `json:"title"`
	Status              domain.ActivityStatus `json:"status"`
	DueDate             *int64                `json:"due_date"`
	RemindBeforeMinutes *int                  `json:"remind_before_minutes"`
	Notes               *string               `json:"notes"`
	AccountID           *string               `json:"account_id"`
	ContactID           *string               `json:"contact_id"`
	DealID              *string               `json:"deal_id"`
	LeadID              *string               `json:"lead_id"`
	CreatedBy           *string               `json:"created_by"`
	CreatedAt           int64                 `json:"created_at"`
	UpdatedAt           int64                 `json:"updated_at"`
}

type NoteResponse struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Body      string  `json:"body"`
	AccountID *string `json:"account_id"`
	ContactID *string `json:"contact_id"`
	DealID    *string `json:"deal_id"`
	LeadID    *string `json:"lead_id"`
	CreatedBy *string `json:"created_by"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// LeadConversionResponse reports the records created by a conversion.
type LeadConversionResponse struct {
	AccountID *string `json:"account_id"`
	ContactID string  `json:"contact_id"`
}

// OKResponse acknowledges updates and deletes.
type OKResponse struct {
	OK bool `json:"ok"`
}

func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		TenantID:  a.TenantID,
		Name:      a.Name,
		Website:   a.Website,
		Phone:     a.Phone,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Title:     c.Title,
		AccountID: c.AccountID,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		ID:        d.ID,
		TenantID:  d.TenantID,
		Title:     d.Title,
		Amount:    d.Amount,
		Currency:  d.Currency,
		Stage:     d.Stage,
		CloseDate: d.CloseDate,
		AccountID: d.AccountID,
		ContactID: d.ContactID,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func NewLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		TenantID:  l.TenantID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Company:   l.Company,
		Source:    l.Source,
		Status:    l.Status,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func NewActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:                  a.ID,
		TenantID:            a.TenantID,
		Type:                a.Type,
		Title:               a.Title,
		Status:              a.Status,
		DueDate:             a.DueDate,
		RemindBeforeMinutes: a.RemindBeforeMinutes,
		Notes:               a.Notes,
		AccountID:           a.AccountID,
		ContactID:           a.ContactID,
		DealID:              a.DealID,
		LeadID:              a.LeadID,
		CreatedBy:           a.CreatedBy,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func NewNoteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		TenantID:  n.TenantID,
		Body:      n.Body,
		AccountID: n.AccountID,
		ContactID: n.ContactID,
		DealID:    n.DealID,
		LeadID:    n.LeadID,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// MapSlice converts a slice of domain values with fn.
func MapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
