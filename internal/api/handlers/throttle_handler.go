package handlers

import (
	"github.com/gofiber/fiber/v2"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/internal/middleware"
)

func ThrottleCheck(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageThrottleCheck)
}

func ThrottleCheckAuth(c *fiber.Ctx) error {
	if !middleware.GetPrincipal(c).Authenticated {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetToken, domain.ErrUnauthenticated)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageThrottleCheckAuth)
}
