package domain

// Role is a user's role inside a tenant.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// CanManageMembers reports whether the role may add users to the tenant.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Tenant is an isolated workspace. All CRM records belong to exactly one.
type Tenant struct {
	ID        string
	Name      string
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}

// Membership links a user to a tenant with a role.
type Membership struct {
	TenantID  string
	UserID    string
	Role      Role
	CreatedAt int64
}

// TenantMembership is a tenant as seen by one of its members.
type TenantMembership struct {
	Tenant Tenant
	Role   Role
}

// Member is a membership joined with the user it belongs to.
type Member struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	CreatedAt int64
}
