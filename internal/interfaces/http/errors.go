package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/domain"
)

// writeError traduce el tipo de error del núcleo a status HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Message: message(err)}
	status := fiber.StatusInternalServerError

	switch domain.KindOf(err) {
	case domain.ErrPartialFailure:
		status, resp.Code = fiber.StatusAccepted, "PARTIAL_FAILURE"
		resp.MovementID = domain.MovementIDOf(err)
	case domain.ErrInvalidInput:
		status, resp.Code = fiber.StatusBadRequest, "VALIDATION"
		if errors.Is(err, domain.ErrDuplicate) {
			status, resp.Code = fiber.StatusConflict, "DUPLICATE"
		}
	case domain.ErrNotFound:
		status, resp.Code = fiber.StatusNotFound, "NOT_FOUND"
	case domain.ErrConflict:
		status, resp.Code = fiber.StatusConflict, "CONFLICT"
	default:
		resp.Code = "STORE"
		resp.Message = "falla de persistencia"
	}
	return c.Status(status).JSON(resp)
}

// message devuelve el mensaje legible sin exponer la causa técnica.
func message(err error) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return domain.KindOf(err).Error()
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
