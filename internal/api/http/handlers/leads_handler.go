package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/service"
)

// LeadsHandler serves /leads.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(svc *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: svc}
}

// List handles GET /leads.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
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
	return c.JSON(dto.MapSlice(items, dto.NewLeadResponse))
}

// Get handles GET /leads/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
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
	return c.JSON(dto.NewLeadResponse(item))
}

// Create handles POST /leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateLeadRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), scope, leadInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewLeadResponse(item))
}

// Update handles PATCH /leads/:id.
func (h *LeadsHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateLeadRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), scope, id, leadPatch(req)); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /leads/:id.
func (h *LeadsHandler) Delete(c *fiber.Ctx) error {
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

// Convert handles POST /leads/:id/convert.
func (h *LeadsHandler) Convert(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	conv, err := h.service.Convert(c.UserContext(), scope, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.LeadConversionResponse{AccountID: conv.AccountID, ContactID: conv.ContactID})
}
