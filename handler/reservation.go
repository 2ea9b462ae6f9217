package handler

import (
	"context"
	"log"
	"movie_reservation/constants"
	"movie_reservation/helper"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateReservation(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	reservation, err := h.Bookings.Book(ctx, currentUserId(c), *input[model.CreateReservationInput](c))
	if err != nil {
		return err
	}

	h.sendConfirmation(reservation.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.RESERVATION_ADDED, fiber.Map{
		"id":         reservation.ID,
		"code":       reservation.Code,
		"showtimeId": reservation.ShowtimeId,
		"seats":      reservation.Seats,
		"totalPrice": reservation.TotalPrice,
	})
}

// sendConfirmation mails the ticket in the background. Failures are only logged.
func (h *Handler) sendConfirmation(reservationId uint) {
	if h.Mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.storageTimeout())
		defer cancel()

		var reservation model.Reservation
		if err := h.DB.WithContext(ctx).
			Preload("User").
			Preload("Showtime.Movie").
			Preload("Showtime.Hall").
			First(&reservation, reservationId).Error; err != nil {
			log.Printf("confirmation for reservation %d: %v", reservationId, err)
			return
		}
		if reservation.User == nil || reservation.Showtime == nil || reservation.Showtime.Movie == nil || reservation.Showtime.Hall == nil {
			return
		}

		err := h.Mailer.SendReservationConfirmation(reservation.User.Email, helper.ReservationMail{
			Code:       reservation.Code,
			MovieTitle: reservation.Showtime.Movie.Title,
			HallName:   reservation.Showtime.Hall.Name,
			StartTime:  reservation.Showtime.StartTime,
			Seats:      reservation.Seats,
			TotalPrice: reservation.TotalPrice,
		})
		if err != nil {
			log.Printf("confirmation for reservation %d: %v", reservationId, err)
		}
	}()
}

func (h *Handler) CancelReservation(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	if err := h.Bookings.Cancel(ctx, currentUserId(c), localId(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.RESERVATION_CANCELLED, nil)
}

func (h *Handler) GetMyReservations(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	ctx, cancel := h.storage(c)
	defer cancel()

	var reservations []model.Reservation
	query := h.DB.WithContext(ctx).
		Preload("Showtime.Movie").
		Preload("Showtime.Hall").
		Where("user_id = ?", currentUserId(c)).
		Order("id DESC")
	if err := utils.ApplyPagination(query, pagination).Find(&reservations).Error; err != nil {
		return utils.Internal(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.RESERVATIONS_FETCHED, model.ResponseCustom{
		Rows:  reservations,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

// GetReservationQRCode returns the ticket of one of the caller's reservations as a PNG.
func (h *Handler) GetReservationQRCode(c *fiber.Ctx) error {
	ctx, cancel := h.storage(c)
	defer cancel()

	var reservation model.Reservation
	if err := h.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", localId(c), currentUserId(c)).
		First(&reservation).Error; err != nil {
		return notFoundOr(err, "Reservation")
	}

	png, err := utils.TicketQRCode(reservation.Code, reservation.ShowtimeId, reservation.Seats)
	if err != nil {
		return utils.Internal(err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
