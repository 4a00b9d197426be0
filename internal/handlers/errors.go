package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/pizzeria/internal/services"
)

// ErrorHandler maps service errors to HTTP responses. Domain error types
// carry their own status; anything unclassified becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		fiberErr *fiber.Error
		valErr   *services.ValidationError
		nfErr    *services.NotFoundError
		authErr  *services.AuthorizationError
		confErr  *services.ConflictError
	)

	switch {
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	case errors.As(err, &valErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": valErr.Msg})
	case errors.As(err, &nfErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": nfErr.Msg})
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": authErr.Msg})
	case errors.As(err, &confErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": confErr.Msg})
	}

	log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
