package handler

import (
	"context"
	"encoding/json"
	"log"
	"movie_reservation/constants"
	"movie_reservation/service"
	"movie_reservation/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeSeatFeed only lets websocket upgrade requests through.
func UpgradeSeatFeed(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

type feedWriter interface {
	WriteJSON(v any) error
}

// SeatFeed sends the current available seats, then forwards every occupancy change
// of the showtime published on Redis until the client leaves or the showtime is deleted.
func (h *Handler) SeatFeed(conn *websocket.Conn) {
	defer conn.Close()
	showtimeId, _ := conn.Locals("id").(uint)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reading detects the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.streamSeats(ctx, showtimeId, conn)
}

// streamSeats subscribes before taking the snapshot, so a change committed while
// the snapshot is read still reaches the client afterwards.
func (h *Handler) streamSeats(ctx context.Context, showtimeId uint, conn feedWriter) {
	pubsub := h.Seats.Subscribe(ctx, showtimeId)
	if pubsub != nil {
		defer pubsub.Close()
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Printf("seat feed %d: subscribe: %v", showtimeId, err)
			_ = conn.WriteJSON(map[string]any{"type": "error", "message": constants.ERROR_INTERNAL_ERROR})
			return
		}
	}

	storageCtx, storageCancel := context.WithTimeout(ctx, h.storageTimeout())
	seats, err := h.Bookings.AvailableSeats(storageCtx, showtimeId)
	storageCancel()
	if err != nil {
		message := utils.PublicMessage(err)
		if message == constants.ERROR_INTERNAL_ERROR {
			log.Printf("seat feed %d: %v", showtimeId, err)
		}
		_ = conn.WriteJSON(map[string]any{"type": "error", "message": message})
		return
	}
	if err := conn.WriteJSON(map[string]any{"type": "seats", "showtimeId": showtimeId, "seats": seats}); err != nil {
		return
	}

	if pubsub == nil {
		<-ctx.Done()
		return
	}

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			var event service.OccupancyEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("seat feed %d: bad payload: %v", showtimeId, err)
				continue
			}
			if err := conn.WriteJSON(map[string]any{"type": "occupancy", "event": event}); err != nil {
				return
			}
			if event.Deleted {
				return
			}
		}
	}
}
