package handlers

import (
	"errors"
	"log"

	"apteekki/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps an error onto the HTTP surface. Application errors
// carry their own status and a client-safe message; anything else becomes
// an opaque 500 so internals never leak.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode()).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}
	log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

// parseID reads the :id route parameter and checks well-formedness. A
// malformed id is a 400, distinct from a well-formed id with no record.
func parseID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperror.NewValidation("malformed id", err)
	}
	return id, nil
}
