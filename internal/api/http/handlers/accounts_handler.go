package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/service"
)

// AccountsHandler serves /accounts.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(svc *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: svc}
}

// List handles GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	filter, err := request.ListFilter(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.UserContext(), scope, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.MapSlice(items, dto.NewAccountResponse))
}

// Get handles GET /accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), scope, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(item))
}

// Create handles POST /accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateAccountRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), scope, accountInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewAccountResponse(item))
}

// Update handles PATCH /accounts/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), scope, id, accountPatch(req)); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), scope, id); err != nil {
		return err
	}
	return okResponse(c)
}
