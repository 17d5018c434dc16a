package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/service"
)

// DealsHandler serves /deals.
type DealsHandler struct {
	service *service.DealService
}

// NewDealsHandler constructs handler.
func NewDealsHandler(svc *service.DealService) *DealsHandler {
	return &DealsHandler{service: svc}
}

// List handles GET /deals.
func (h *DealsHandler) List(c *fiber.Ctx) error {
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
	return c.JSON(dto.MapSlice(items, dto.NewDealResponse))
}

// Get handles GET /deals/:id.
func (h *DealsHandler) Get(c *fiber.Ctx) error {
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
	return c.JSON(dto.NewDealResponse(item))
}

// Create handles POST /deals.
func (h *DealsHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateDealRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), scope, dealInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewDealResponse(item))
}

// Update handles PATCH /deals/:id.
func (h *DealsHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateDealRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), scope, id, dealPatch(req)); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /deals/:id.
func (h *DealsHandler) Delete(c *fiber.Ctx) error {
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
