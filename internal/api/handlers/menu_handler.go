package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/internal/middleware"
	"little-lemon/internal/utils"
	"little-lemon/pkg/menu"
)

type (
	MenuHandler interface {
		GetCategories(c *fiber.Ctx) error
		AddCategory(c *fiber.Ctx) error
		GetMenuItems(c *fiber.Ctx) error
		GetMenuItem(c *fiber.Ctx) error
		AddMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		PatchMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		UploadMenuItemImage(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetCategories(c *fiber.Ctx) error {
	res, err := h.menuService.GetCategories(c.UserContext())
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *menuHandler) AddCategory(c *fiber.Ctx) error {
	req := new(domain.AddCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCategory, err)
	}

	res, err := h.menuService.AddCategory(c.UserContext(), middleware.GetPrincipal(c), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddCategory)
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	page := utils.ParsePage(c.Query("perpage"), c.Query("page"))
	filter := domain.MenuItemFilter{
		Category: c.Query("category"),
		ToPrice:  c.Query("to_price"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		PerPage:  page.PerPage,
		Page:     page.Number,
	}

	items, count, err := h.menuService.GetMenuItems(c.UserContext(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMenuItems, err)
	}
	return presenters.PaginatedResponse(c, items, domain.PaginationResponse{
		Page:    page.Number,
		PerPage: page.PerPage,
		Total:   count,
	}, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) GetMenuItem(c *fiber.Ctx) error {
	res, err := h.menuService.GetMenuItemByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMenuItems, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) AddMenuItem(c *fiber.Ctx) error {
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	p := middleware.GetPrincipal(c)
	if !p.IsManager() {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMenuItem, err)
	}

	res, err := h.menuService.AddMenuItem(c.UserContext(), p, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	p := middleware.GetPrincipal(c)
	if !p.IsManager() {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.UserContext(), p, c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) PatchMenuItem(c *fiber.Ctx) error {
	req := new(domain.PatchMenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	p := middleware.GetPrincipal(c)
	if !p.IsManager() {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.PatchMenuItem(c.UserContext(), p, c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	if err := h.menuService.DeleteMenuItem(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteMenuItem, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *menuHandler) UploadMenuItemImage(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	if !p.IsManager() {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage,
			domain.NewFieldError("image", "This field is required."))
	}

	res, err := h.menuService.UploadMenuItemImage(c.UserContext(), p, c.Params("id"), domain.UploadMenuItemImageRequest{Image: image})
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
