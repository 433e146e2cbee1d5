package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain"
)

// statusFor traduce un error de dominio a status HTTP y código de ErrorResponse.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrRowBusy):
		return fiber.StatusConflict, "ROW_BUSY"
	case errors.Is(err, domain.ErrNotEditing):
		return fiber.StatusConflict, "NOT_EDITING"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "UPSTREAM"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func errorBody(status int, err error) dto.ErrorResponse {
	code := "INTERNAL"
	switch status {
	case fiber.StatusNotFound:
		code = "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		code = "TOO_LARGE"
	case fiber.StatusBadRequest:
		code = "INVALID_BODY"
	}
	return dto.ErrorResponse{Code: code, Message: err.Error()}
}

// apiError responde el error en JSON. Los errores de validación llevan fields.
func apiError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	if fe, ok := validation.AsFieldErrors(err); ok {
		resp.Message = "datos inválidos"
		resp.Fields = fe
	}
	return c.Status(status).JSON(resp)
}

// formStatus status de una página de formulario re-renderizada con errores.
func formStatus(err error) int {
	if _, ok := validation.AsFieldErrors(err); ok {
		return fiber.StatusUnprocessableEntity
	}
	status, _ := statusFor(err)
	return status
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
