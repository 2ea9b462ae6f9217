package handler

import (
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetAllReservations(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	ctx, cancel := h.storage(c)
	defer cancel()

	var reservations []model.Reservation
	query := h.DB.WithContext(ctx).Preload("Showtime").Order("id")
	if err := utils.ApplyPagination(query, pagination).Find(&reservations).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.RESERVATIONS_FETCHED, model.ResponseCustom{
		Rows:  reservations,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

// GetReports sums every reservation still on record, overall and per movie.
func (h *Handler) GetReports(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()
	db := h.DB.WithContext(ctx)

	var totals struct {
		TotalReservations int64
		TotalRevenue      float64
	}
	if err := db.Model(&model.Reservation{}).
		Select("COUNT(*) AS total_reservations, COALESCE(SUM(total_price), 0) AS total_revenue").
		Scan(&totals).Error; err != nil {
		return utils.Internal(err)
	}

	byMovie := []model.MovieRevenue{}
	if err := db.Model(&model.Reservation{}).
		Select("movies.id AS movie_id, movies.title AS title, COUNT(reservations.id) AS reservations, COALESCE(SUM(reservations.total_price), 0) AS revenue").
		Joins("JOIN showtimes ON showtimes.id = reservations.showtime_id").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Group("movies.id, movies.title").
		Order("revenue DESC").
		Scan(&byMovie).Error; err != nil {
		return utils.Internal(err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, constants.REPORTS_FETCHED, model.Report{
		TotalReservations: totals.TotalReservations,
		TotalRevenue:      totals.TotalRevenue,
		RevenueByMovie:    byMovie,
	})
}
