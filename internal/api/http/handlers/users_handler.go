package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workshop-service/internal/api/dto"
	"github.com/spec-kit/workshop-service/internal/schema"
	"github.com/spec-kit/workshop-service/internal/service"
)

const invalidCredentials = "Invalid user data"

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	creds, err := schema.ParseCredentials(c.Body())
	if err != nil {
		return invalidInput(invalidCredentials, err)
	}
	user, err := h.auth.Register(c.UserContext(), creds)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	creds, err := schema.ParseCredentials(c.Body())
	if err != nil {
		return invalidInput(invalidCredentials, err)
	}
	user, token, exp, err := h.auth.Login(c.UserContext(), creds)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{Token: token, ExpiresAt: exp, User: dto.NewUserResponse(user)})
}
