package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// scopeFrom builds the service scope from the auth and tenant middleware locals.
func scopeFrom(c *fiber.Ctx) (service.Scope, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Scope{}, apperrors.NewUnauthorized("authentication required")
	}
	tenant, ok := auth.TenantFromContext(c)
	if !ok {
		return service.Scope{}, apperrors.NewForbidden(apperrors.CodeForbiddenTenant, "no active tenant")
	}
	return service.Scope{TenantID: tenant.TenantID, UserID: principal.User.ID}, nil
}

func okResponse(c *fiber.Ctx) error {
	return c.JSON(dto.OKResponse{OK: true})
}

func created(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}
