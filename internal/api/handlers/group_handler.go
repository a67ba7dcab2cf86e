package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/internal/middleware"
	"little-lemon/pkg/group"
)

type (
	GroupHandler interface {
		ListMembers(c *fiber.Ctx) error
		AddMember(c *fiber.Ctx) error
		RemoveMember(c *fiber.Ctx) error
	}

	// groupHandler serves the membership endpoints of a single staff group.
	groupHandler struct {
		groupService group.GroupService
		validator    *validator.Validate
		role         string
	}
)

func NewGroupHandler(groupService group.GroupService, validator *validator.Validate, role string) GroupHandler {
	return &groupHandler{
		groupService: groupService,
		validator:    validator,
		role:         role,
	}
}

func (h *groupHandler) ListMembers(c *fiber.Ctx) error {
	res, err := h.groupService.ListRole(c.UserContext(), middleware.GetPrincipal(c), h.role)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedListGroup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessListGroup)
}

func (h *groupHandler) AddMember(c *fiber.Ctx) error {
	req := new(domain.AddToGroupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	p := middleware.GetPrincipal(c)
	if !p.IsManager() {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrForbidden)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddToGroup, err)
	}

	res, err := h.groupService.AddToRole(c.UserContext(), p, h.role, req.UserID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddToGroup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, fmt.Sprintf(domain.MessageSuccessAddToGroup, res.Username, h.role))
}

func (h *groupHandler) RemoveMember(c *fiber.Ctx) error {
	res, err := h.groupService.RemoveFromRole(c.UserContext(), middleware.GetPrincipal(c), h.role, c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRemoveFromGroup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, fmt.Sprintf(domain.MessageSuccessRemoveFromGroup, res.Username, h.role))
}
