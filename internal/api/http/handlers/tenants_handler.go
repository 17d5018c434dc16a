package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// TenantsHandler exposes tenant and membership endpoints.
type TenantsHandler struct {
	tenants *service.TenantService
}

// NewTenantsHandler constructs handler.
func NewTenantsHandler(tenants *service.TenantService) *TenantsHandler {
	return &TenantsHandler{tenants: tenants}
}

// List handles GET /tenants.
func (h *TenantsHandler) List(c *fiber.Ctx) error {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.tenants.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.MapSlice(items, dto.NewTenantResponse))
}

// Create handles POST /tenants.
func (h *TenantsHandler) Create(c *fiber.Ctx) error {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTenantRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	tm, err := h.tenants.Create(c.UserContext(), principal.User.ID, service.TenantInput{ID: req.ID, Name: req.Name})
	if err != nil {
		return err
	}
	return created(c, dto.NewTenantResponse(tm))
}

// Current handles GET /tenants/current.
func (h *TenantsHandler) Current(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	tc, _ := auth.TenantFromContext(c)
	tm, err := h.tenants.Current(c.UserContext(), scope, tc.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponse(tm))
}

// Members handles GET /tenants/current/members.
func (h *TenantsHandler) Members(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	members, err := h.tenants.Members(c.UserContext(), scope)
	if err != nil {
		return err
	}
	return c.JSON(dto.MapSlice(members, dto.NewMemberResponse))
}

// AddMember handles POST /tenants/current/members.
func (h *TenantsHandler) AddMember(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.AddMemberRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	tc, _ := auth.TenantFromContext(c)
	member, err := h.tenants.AddMember(c.UserContext(), scope, tc.Role, service.MemberInput{Email: req.Email, Role: req.Role})
	if err != nil {
		return err
	}
	return created(c, dto.NewMemberResponse(member))
}
