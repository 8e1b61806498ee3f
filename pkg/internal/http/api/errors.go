package api

import (
	"errors"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// toHttpError maps service errors to the status code the client sees.
func toHttpError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidRelationship):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAuthenticationRequired):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("An error occurred when handling request...")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
