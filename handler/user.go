package handler

import (
	"movie_reservation/constants"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) PromoteUser(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	user, err := h.Roles.Promote(ctx, localId(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.USER_PROMOTED, user)
}

func (h *Handler) DemoteUser(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	user, err := h.Roles.Demote(ctx, localId(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.ADMIN_DEMOTED, user)
}
