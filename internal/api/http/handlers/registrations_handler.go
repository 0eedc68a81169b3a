package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workshop-service/internal/schema"
	"github.com/spec-kit/workshop-service/internal/service"
)

// RegistrationsHandler accepts workshop sign-ups.
type RegistrationsHandler struct {
	service *service.RegistrationService
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrationService *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{service: registrationService}
}

// Create POST /registrations.
func (h *RegistrationsHandler) Create(c *fiber.Ctx) error {
	input, err := schema.ParseRegistration(c.Body())
	if err != nil {
		return invalidInput("Invalid registration data", err)
	}
	registration, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(registration)
}
