package domain

// Note is free text attached to any other record.
type Note struct {
	ID        string
	TenantID  string
	Body      string
	AccountID *string
	ContactID *string
	DealID    *string
	LeadID    *string
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}
