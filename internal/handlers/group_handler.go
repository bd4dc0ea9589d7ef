package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/service"
	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

type GroupHandler struct {
	groups *service.GroupService
}

func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) MakeAdmin(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.groups.MakeAdmin(c.Context(), c.Params("id"), middleware.UserID(c), body.UserID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.groups.RemoveMember(c.Context(), c.Params("id"), middleware.UserID(c), c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "removed"})
}

func (h *GroupHandler) Exit(c *fiber.Ctx) error {
	if err := h.groups.ExitGroup(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "left"})
}

func (h *GroupHandler) GenerateInvite(c *fiber.Ctx) error {
	code, err := h.groups.GenerateInvite(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"code":    code,
		"payload": utils.BuildJoinCodePayload(code),
	})
}

func (h *GroupHandler) RevokeInvite(c *fiber.Ctx) error {
	if err := h.groups.RevokeInvite(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "revoked"})
}

func (h *GroupHandler) SetJoinApproval(c *fiber.Ctx) error {
	var body struct {
		Required bool `json:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.groups.SetJoinApproval(c.Context(), c.Params("id"), middleware.UserID(c), body.Required); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *GroupHandler) Join(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	res, err := h.groups.RequestJoin(c.Context(), body.Code, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (h *GroupHandler) PendingRequests(c *fiber.Ctx) error {
	reqs, err := h.groups.PendingRequests(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reqs)
}

func (h *GroupHandler) ApproveRequest(c *fiber.Ctx) error {
	if err := h.groups.ApproveRequest(c.Context(), c.Params("id"), c.Params("requestId"), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "approved"})
}

func (h *GroupHandler) DeclineRequest(c *fiber.Ctx) error {
	if err := h.groups.DeclineRequest(c.Context(), c.Params("id"), c.Params("requestId"), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "declined"})
}
