package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/internal/middleware"
	"little-lemon/internal/utils"
	"little-lemon/pkg/order"
)

type (
	OrderHandler interface {
		Checkout(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		UpdateOrder(c *fiber.Ctx) error
		DeleteOrder(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) Checkout(c *fiber.Ctx) error {
	res, err := h.orderService.Checkout(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCheckout, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCheckout)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	page := utils.ParsePage(c.Query("perpage"), c.Query("page"))
	filter := domain.OrderFilter{
		ToPrice:  c.Query("to_price"),
		IDPrefix: c.Query("id"),
		Status:   c.Query("status"),
		Ordering: c.Query("ordering"),
		PerPage:  page.PerPage,
		Page:     page.Number,
	}

	orders, count, err := h.orderService.GetOrders(c.UserContext(), middleware.GetPrincipal(c), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetOrders, err)
	}
	return presenters.PaginatedResponse(c, orders, domain.PaginationResponse{
		Page:    page.Number,
		PerPage: page.PerPage,
		Total:   count,
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrder(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) UpdateOrder(c *fiber.Ctx) error {
	req := new(domain.UpdateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	res, err := h.orderService.UpdateOrder(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *orderHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orderService.DeleteOrder(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteOrder, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteOrder)
}
