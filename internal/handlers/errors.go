package handlers

import (
	"errors"

	"mantis/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// respondError translates controller error kinds into HTTP responses. The
// kind travels as its own field so clients can branch without parsing the
// message. Persistence details never leave the server.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"kind":  apperrors.KindPersistence.String(),
			"error": "Internal server error",
		})
	}

	body := fiber.Map{
		"kind":  appErr.Kind.String(),
		"error": appErr.Message,
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case apperrors.KindDuplicateSubmission, apperrors.KindInvalidState:
		return c.Status(fiber.StatusConflict).JSON(body)
	case apperrors.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"kind":  apperrors.KindPersistence.String(),
			"error": "Internal server error",
		})
	}
}
