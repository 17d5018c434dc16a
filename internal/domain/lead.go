package domain

// LeadStatus enumerates the qualification states of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "nuevo"
	LeadStatusContacted LeadStatus = "contactado"
	LeadStatusQualified LeadStatus = "calificado"
	LeadStatusDiscarded LeadStatus = "descartado"
)

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusDiscarded:
		return true
	}
	return false
}

// Lead is a prospect not yet converted to an account/contact.
type Lead struct {
	ID        string
	TenantID  string
	Name      string
	Email     *string
	Phone     *string
	Company   *string
	Source    *string
	Status    LeadStatus
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}
