package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func invalidInput(c *fiber.Ctx, msg string, errs map[string]string) error {
	applog.Security(c, "validation.fail", map[string]any{"fields": errs})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg, "errors": errs})
}

// serviceError maps the service error taxonomy onto a response:
// validation -> 400, not found -> 404, anything else -> logged opaque 500.
func serviceError(c *fiber.Ctx, action string, err error, notFound, failed string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return invalidInput(c, "Invalid request data", verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, notFound)
	default:
		applog.Error(c, action, err, nil)
		return fail(c, fiber.StatusInternalServerError, failed)
	}
}

// ErrorHandler answers unhandled errors as JSON without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}
