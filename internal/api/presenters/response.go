package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"little-lemon/domain"
	"little-lemon/internal/utils"
)

type Response struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Meta    any               `json:"meta,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func PaginatedResponse(c *fiber.Ctx, data any, meta domain.PaginationResponse, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		res.Errors = utils.ValidationFields(err)
	}
	return c.Status(statusCode).JSON(res)
}

// ServiceErrorResponse picks the status code from the error taxonomy.
// Forbidden answers carry the generic message only, and unclassified
// errors are logged and hidden.
func ServiceErrorResponse(c *fiber.Ctx, message string, err error) error {
	status := StatusFromError(err)
	switch status {
	case fiber.StatusForbidden:
		return ErrorResponse(c, status, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	case fiber.StatusInternalServerError:
		log.Errorf("%s: %v", message, err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, status, message, err)
}

func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrOrderCreation),
		errors.Is(err, domain.ErrNotInRole),
		errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
