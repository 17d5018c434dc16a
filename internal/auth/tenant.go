package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/observability"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// TenantHeader carries the caller's active tenant.
const TenantHeader = "X-Tenant-Id"

const tenantKey = "tenant_context"

// TenantContext is the tenant a request operates on, resolved once per request.
type TenantContext struct {
	TenantID string
	Role     domain.Role
}

// TenantMiddleware resolves the active tenant and verifies the caller is a member.
// It must run after AuthMiddleware.
type TenantMiddleware struct {
	tenants       repository.TenantRepository
	defaultTenant string
}

// NewTenantMiddleware constructs middleware. defaultTenant is used when the
// request carries no tenant header.
func NewTenantMiddleware(tenants repository.TenantRepository, defaultTenant string) *TenantMiddleware {
	return &TenantMiddleware{tenants: tenants, defaultTenant: defaultTenant}
}

// Handle attaches a TenantContext to the request.
func (m *TenantMiddleware) Handle(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tenantID := strings.TrimSpace(c.Get(TenantHeader))
	if tenantID == "" {
		tenantID = m.defaultTenant
	}
	if tenantID == "" {
		return apperrors.NewValidationError("tenant header required")
	}

	membership, err := m.tenants.GetMembership(c.UserContext(), tenantID, principal.User.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewForbidden(apperrors.CodeForbiddenTenant, "not a member of tenant "+tenantID)
		}
		return apperrors.MapError(err)
	}

	c.Locals(tenantKey, &TenantContext{TenantID: membership.TenantID, Role: membership.Role})
	c.Locals(observability.TenantLocal, membership.TenantID)
	return c.Next()
}

// TenantFromContext returns the tenant resolved for the request.
func TenantFromContext(c *fiber.Ctx) (*TenantContext, bool) {
	tc, ok := c.Locals(tenantKey).(*TenantContext)
	return tc, ok && tc != nil
}

// RequireManager ensures the caller may manage the active tenant's members.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, ok := TenantFromContext(c)
		if !ok || !tc.Role.CanManageMembers() {
			return apperrors.NewForbidden(apperrors.CodeForbidden, "owner or admin role required")
		}
		return c.Next()
	}
}
