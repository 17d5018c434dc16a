package dto

import "github.com/spec-kit/crm-service/internal/domain"

// CreateTenantRequest payload.
type CreateTenantRequest struct {
	ID   string `json:"id" validate:"max=64"`
	Name string `json:"name" validate:"required,max=200"`
}

// AddMemberRequest payload.
type AddMemberRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Role  domain.Role `json:"role" validate:"omitempty,oneof=owner admin member"`
}

// TenantResponse is a tenant together with the caller's role in it.
type TenantResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedBy *string     `json:"created_by"`
	CreatedAt int64       `json:"created_at"`
	UpdatedAt int64       `json:"updated_at"`
}

// MemberResponse is one tenant member.
type MemberResponse struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt int64       `json:"created_at"`
}

func NewTenantResponse(tm *domain.TenantMembership) TenantResponse {
	return TenantResponse{
		ID:        tm.Tenant.ID,
		Name:      tm.Tenant.Name,
		Role:      tm.Role,
		CreatedBy: tm.Tenant.CreatedBy,
		CreatedAt: tm.Tenant.CreatedAt,
		UpdatedAt: tm.Tenant.UpdatedAt,
	}
}

func NewMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{UserID: m.UserID, Email: m.Email, Name: m.Name, Role: m.Role, CreatedAt: m.CreatedAt}
}
