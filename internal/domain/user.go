package domain

// User is an authenticated person who can belong to several tenants.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    int64
	UpdatedAt    int64
}
