package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/internal/middleware"
	"little-lemon/pkg/cart"
)

type (
	CartHandler interface {
		GetCart(c *fiber.Ctx) error
		AddToCart(c *fiber.Ctx) error
		ClearCart(c *fiber.Ctx) error
	}

	cartHandler struct {
		cartService cart.CartService
		validator   *validator.Validate
	}
)

func NewCartHandler(cartService cart.CartService, validator *validator.Validate) CartHandler {
	return &cartHandler{
		cartService: cartService,
		validator:   validator,
	}
}

func (h *cartHandler) GetCart(c *fiber.Ctx) error {
	res, err := h.cartService.List(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetCart, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCart)
}

func (h *cartHandler) AddToCart(c *fiber.Ctx) error {
	req := new(domain.AddToCartRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddToCart, err)
	}

	res, err := h.cartService.AddOrUpdate(c.UserContext(), middleware.GetPrincipal(c), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddToCart, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *cartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.cartService.ClearAll(c.UserContext(), middleware.GetPrincipal(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedClearCart, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
