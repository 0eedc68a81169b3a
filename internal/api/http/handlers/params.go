package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workshop-service/internal/schema"
	apperrors "github.com/spec-kit/workshop-service/pkg/util/errorutil"
)

// workshopID reads the :id path segment. Anything that is not an integer
// is rejected before the request reaches a service.
func workshopID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, apperrors.NewBadRequest("Invalid workshop ID")
	}
	return id, nil
}

// invalidInput turns schema violations into a validation error carrying
// every rejected field.
func invalidInput(message string, err error) error {
	var violations schema.Violations
	if errors.As(err, &violations) {
		return apperrors.NewValidationError(message, map[string]any{"fields": violations})
	}
	return apperrors.NewValidationError(message, nil)
}
