package handler

import (
	"errors"
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) GetHalls(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	ctx, cancel := h.storage(c)
	defer cancel()

	var halls []model.Hall
	if err := utils.ApplyPagination(h.DB.WithContext(ctx).Order("id"), pagination).Find(&halls).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.HALLS_FETCHED, model.ResponseCustom{
		Rows:  halls,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (h *Handler) GetHallById(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	var hall model.Hall
	if err := h.DB.WithContext(ctx).First(&hall, localId(c)).Error; err != nil {
		return notFoundOr(err, "Hall")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.HALL_FETCHED, hall)
}

func (h *Handler) CreateHall(c *fiber.Ctx) error {
	hallInput := input[model.CreateHallInput](c)
	ctx, cancel := h.storage(c)
	defer cancel()

	newHall := new(model.Hall)
	if err := copier.Copy(newHall, hallInput); err != nil {
		return utils.Internal(err)
	}
	newHall.Seats = model.HallSeats(hallInput.Seats)
	newHall.PriceMultiplier = 1
	if hallInput.PriceMultiplier != nil {
		newHall.PriceMultiplier = *hallInput.PriceMultiplier
	}

	if err := h.DB.WithContext(ctx).Create(newHall).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(constants.HALL_ALREADY_EXISTS)
		}
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.HALL_ADDED, newHall)
}

// ReplaceHall handles PUT. An omitted priceMultiplier resets to 1.
func (h *Handler) ReplaceHall(c *fiber.Ctx) error {
	hallInput := input[model.CreateHallInput](c)
	seats := hallInput.Seats
	multiplier := 1.0
	if hallInput.PriceMultiplier != nil {
		multiplier = *hallInput.PriceMultiplier
	}
	return h.updateHall(c, model.PatchHallInput{
		Name:            &hallInput.Name,
		Seats:           &seats,
		PriceMultiplier: &multiplier,
	})
}

func (h *Handler) PatchHall(c *fiber.Ctx) error {
	return h.updateHall(c, *input[model.PatchHallInput](c))
}

func (h *Handler) updateHall(c *fiber.Ctx, patch model.PatchHallInput) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	hall, err := h.Catalog.UpdateHall(ctx, localId(c), patch)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(constants.HALL_ALREADY_EXISTS)
		}
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.HALL_CHANGED, hall)
}

func (h *Handler) DeleteHall(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	if err := h.Catalog.DeleteHall(ctx, localId(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.HALL_DELETED, nil)
}
