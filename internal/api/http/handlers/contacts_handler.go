package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/service"
)

// ContactsHandler serves /contacts.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(svc *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: svc}
}

// List handles GET /contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
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
	return c.JSON(dto.MapSlice(items, dto.NewContactResponse))
}

// Get handles GET /contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
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
	return c.JSON(dto.NewContactResponse(item))
}

// Create handles POST /contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateContactRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), scope, contactInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewContactResponse(item))
}

// Update handles PATCH /contacts/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateContactRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), scope, id, contactPatch(req)); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
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
