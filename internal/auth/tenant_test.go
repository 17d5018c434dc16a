package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository/memory"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

func tenantApp(t *testing.T, role domain.Role, tenants ...string) *fiber.App {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore(append([]string{"demo"}, tenants...)...).Repositories()
	user := &domain.User{ID: "u1", Email: "ana@acme.test", Name: "Ana"}
	require.NoError(t, repos.Users.Create(ctx, user))
	require.NoError(t, repos.Tenants.AddMember(ctx, &domain.Membership{TenantID: "demo", UserID: "u1", Role: role}))

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
	}})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(principalKey, &Principal{User: user})
		return c.Next()
	})
	mw := NewTenantMiddleware(repos.Tenants, "demo")
	app.Get("/whoami", mw.Handle, func(c *fiber.Ctx) error {
		tc, _ := TenantFromContext(c)
		return c.JSON(fiber.Map{"tenant": tc.TenantID, "role": tc.Role})
	})
	app.Post("/manage", mw.Handle, RequireManager(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, tenant string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if tenant != "" {
		req.Header.Set(TenantHeader, tenant)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestTenantMiddlewareDefaultsTenant(t *testing.T) {
	app := tenantApp(t, domain.RoleMember)
	status, body := send(t, app, "GET", "/whoami", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "demo", body["tenant"])
	assert.Equal(t, "member", body["role"])
}

func TestTenantMiddlewareRejectsNonMember(t *testing.T) {
	app := tenantApp(t, domain.RoleMember, "other")
	status, body := send(t, app, "GET", "/whoami", " other ")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbiddenTenant, body["error"])
}

func TestRequireManager(t *testing.T) {
	status, _ := send(t, tenantApp(t, domain.RoleMember), "POST", "/manage", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = send(t, tenantApp(t, domain.RoleAdmin), "POST", "/manage", "")
	assert.Equal(t, fiber.StatusNoContent, status)
}
