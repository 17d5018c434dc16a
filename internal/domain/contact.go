package domain

// Contact is a person, optionally attached to an account.
type Contact struct {
	ID        string
	TenantID  string
	Name      string
	Email     *string
	Phone     *string
	Title     *string
	AccountID *string
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}
