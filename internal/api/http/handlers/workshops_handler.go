package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workshop-service/internal/api/dto"
	"github.com/spec-kit/workshop-service/internal/domain"
	"github.com/spec-kit/workshop-service/internal/schema"
	"github.com/spec-kit/workshop-service/internal/service"
)

const invalidWorkshopData = "Invalid workshop data"

// WorkshopsHandler exposes the workshop catalogue.
type WorkshopsHandler struct {
	service *service.WorkshopService
}

// NewWorkshopsHandler constructs handler.
func NewWorkshopsHandler(workshopService *service.WorkshopService) *WorkshopsHandler {
	return &WorkshopsHandler{service: workshopService}
}

// List GET /workshops.
func (h *WorkshopsHandler) List(c *fiber.Ctx) error {
	workshops, err := h.service.List(c.UserContext(), parseWorkshopQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(workshops)
}

// Get GET /workshops/:id.
func (h *WorkshopsHandler) Get(c *fiber.Ctx) error {
	id, err := workshopID(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// Create POST /workshops.
func (h *WorkshopsHandler) Create(c *fiber.Ctx) error {
	input, err := schema.ParseWorkshop(c.Body())
	if err != nil {
		return invalidInput(invalidWorkshopData, err)
	}
	workshop, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(workshop)
}

// Update PUT /workshops/:id.
func (h *WorkshopsHandler) Update(c *fiber.Ctx) error {
	id, err := workshopID(c)
	if err != nil {
		return err
	}
	patch, err := schema.ParseWorkshopPatch(c.Body())
	if err != nil {
		return invalidInput(invalidWorkshopData, err)
	}
	workshop, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(workshop)
}

// Delete DELETE /workshops/:id.
func (h *WorkshopsHandler) Delete(c *fiber.Ctx) error {
	id, err := workshopID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Registrations GET /workshops/:id/registrations.
func (h *WorkshopsHandler) Registrations(c *fiber.Ctx) error {
	id, err := workshopID(c)
	if err != nil {
		return err
	}
	registrations, err := h.service.Registrations(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(registrations)
}

// RegistrationCount GET /workshops/:id/registration-count.
func (h *WorkshopsHandler) RegistrationCount(c *fiber.Ctx) error {
	id, err := workshopID(c)
	if err != nil {
		return err
	}
	count, err := h.service.RegistrationCount(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: count})
}

// parseWorkshopQuery reads category, status and q. Unknown enum values are
// passed through and simply match nothing.
func parseWorkshopQuery(c *fiber.Ctx) service.WorkshopFilter {
	var filter service.WorkshopFilter
	if v := c.Query("category"); v != "" {
		category := domain.Category(v)
		filter.Category = &category
	}
	if v := c.Query("status"); v != "" {
		status := domain.WorkshopStatus(v)
		filter.Status = &status
	}
	filter.Query = c.Query("q")
	return filter
}
