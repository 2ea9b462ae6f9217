package handler

import (
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetShowtimes(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	ctx, cancel := h.storage(c)
	defer cancel()

	var showtimes []model.Showtime
	query := h.DB.WithContext(ctx).Preload("Movie").Preload("Hall").Order("start_time").Order("id")
	if err := utils.ApplyPagination(query, pagination).Find(&showtimes).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SHOWTIMES_FETCHED, model.ResponseCustom{
		Rows:  publicShowtimes(showtimes),
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (h *Handler) GetShowtimeById(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	var showtime model.Showtime
	if err := h.DB.WithContext(ctx).Preload("Movie").Preload("Hall").First(&showtime, localId(c)).Error; err != nil {
		return notFoundOr(err, "Showtime")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SHOWTIME_FETCHED, publicShowtimes([]model.Showtime{showtime})[0])
}

func (h *Handler) CreateShowtime(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	showtime, err := h.Catalog.CreateShowtime(ctx, *input[model.CreateShowtimeInput](c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.SHOWTIME_ADDED, showtime)
}

// ReplaceShowtime handles PUT: every field is required and overwritten.
func (h *Handler) ReplaceShowtime(c *fiber.Ctx) error {
	showtimeInput := input[model.CreateShowtimeInput](c)
	return h.updateShowtime(c, model.PatchShowtimeInput{
		MovieId:   &showtimeInput.MovieId,
		HallId:    &showtimeInput.HallId,
		StartTime: &showtimeInput.StartTime,
		Price:     showtimeInput.Price,
	})
}

func (h *Handler) PatchShowtime(c *fiber.Ctx) error {
	return h.updateShowtime(c, *input[model.PatchShowtimeInput](c))
}

func (h *Handler) updateShowtime(c *fiber.Ctx, patch model.PatchShowtimeInput) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	showtime, err := h.Catalog.UpdateShowtime(ctx, localId(c), patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SHOWTIME_CHANGED, showtime)
}

func (h *Handler) DeleteShowtime(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	if err := h.Catalog.DeleteShowtime(ctx, localId(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SHOWTIME_DELETED, nil)
}

func (h *Handler) GetShowtimeSeats(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	seats, err := h.Bookings.AvailableSeats(ctx, localId(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.SEATS_FETCHED, seats)
}
