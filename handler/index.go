package handler

import (
	"context"
	"movie_reservation/config"
	"movie_reservation/helper"
	"movie_reservation/service"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	DB       *gorm.DB
	Settings config.Settings
	Clock    clockwork.Clock
	Tokens   *helper.TokenIssuer
	Bookings *service.BookingService
	Catalog  *service.CatalogService
	Roles    *service.RoleService
	Seats    *service.SeatCache
	Codes    *service.ResetCodes
	Mailer   helper.Mailer
	Cloud    *cloudinary.Cloudinary
}

// storage bounds the storage calls of one request.
func (h *Handler) storage(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.storageTimeout())
}

func (h *Handler) storageTimeout() time.Duration {
	if h.Settings.StorageTimeout <= 0 {
		return 5 * time.Second
	}
	return h.Settings.StorageTimeout
}

func input[T any](c *fiber.Ctx) *T {
	v, _ := c.Locals("input").(*T)
	if v == nil {
		v = new(T)
	}
	return v
}

func localId(c *fiber.Ctx) uint {
	id, _ := c.Locals("id").(uint)
	return id
}

func currentUserId(c *fiber.Ctx) uint {
	id, _ := c.Locals("userId").(uint)
	return id
}
