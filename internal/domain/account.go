package domain

// Account is a customer organisation.
type Account struct {
	ID        string
	TenantID  string
	Name      string
	Website   *string
	Phone     *string
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}
