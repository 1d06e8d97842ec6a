package handler

import (
	"errors"

	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a service error onto the HTTP taxonomy: validation 400,
// missing records 404, conflicts (duplicates, insufficient stock) 409,
// anything unexpected 500. Storage failures never surface details.
func fail(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	var notFoundErr *service.ProductNotFoundError
	var stockErr *service.InsufficientStockError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, service.ErrCustomerRequired),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrHasProducts):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &notFoundErr),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &stockErr),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateBarcode),
		errors.Is(err, service.ErrDuplicateUser):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func actor(c *fiber.Ctx) model.Actor {
	a, _ := middleware.ActorFromContext(c)
	return a
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
