package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/api/request"
	"github.com/spec-kit/crm-service/internal/service"
)

// ActivitiesHandler serves /activities.
type ActivitiesHandler struct {
	service *service.ActivityService
}

// NewActivitiesHandler constructs handler.
func NewActivitiesHandler(svc *service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{service: svc}
}

// List handles GET /activities.
func (h *ActivitiesHandler) List(c *fiber.Ctx) error {
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
	return c.JSON(dto.MapSlice(items, dto.NewActivityResponse))
}

// Get handles GET /activities/:id.
func (h *ActivitiesHandler) Get(c *fiber.Ctx) error {
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
	return c.JSON(dto.NewActivityResponse(item))
}

// Create handles POST /activities.
func (h *ActivitiesHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateActivityRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), scope, activityInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewActivityResponse(item))
}

// Update handles PATCH /activities/:id.
func (h *ActivitiesHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeFrom(c)
	if err != nil {
		return err
	}
	id, err := request.RequireID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateActivityRequest
	if err := request.Decode(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), scope, id, activityPatch(req)); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /activities/:id.
func (h *ActivitiesHandler) Delete(c *fiber.Ctx) error {
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
