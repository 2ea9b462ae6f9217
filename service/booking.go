package service

import (
	"context"
	"errors"
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns seat occupancy: availability, booking and cancellation.
type BookingService struct {
	db    *gorm.DB
	clock clockwork.Clock
	locks *ShowtimeLocks
	cache *SeatCache
}

func NewBookingService(db *gorm.DB, clock clockwork.Clock, locks *ShowtimeLocks, cache *SeatCache) *BookingService {
	return &BookingService{db: db, clock: clock, locks: locks, cache: cache}
}

// AvailableSeats lists the unoccupied seats of a showtime with their price.
func (s *BookingService) AvailableSeats(ctx context.Context, showtimeId uint) ([]model.AvailableSeat, error) {
	if seats, ok := s.cache.Get(ctx, showtimeId); ok {
		return seats, nil
	}
	version := s.cache.Version(ctx, showtimeId)

	db := s.db.WithContext(ctx)
	var showtime model.Showtime
	if err := db.First(&showtime, showtimeId).Error; err != nil {
		return nil, notFoundOr(err, "Showtime")
	}
	var hall model.Hall
	if err := db.First(&hall, showtime.HallId).Error; err != nil {
		return nil, notFoundOr(err, "Hall")
	}

	seats := AvailableSeats(&hall, &showtime)
	s.cache.Set(ctx, showtimeId, version, seats)
	return seats, nil
}

// Book reserves seats for userId. Preconditions are checked in order: parameters
// present, showtime exists, seats exist in the hall, seats free. The check and the
// write happen under the showtime's lock and row lock, so at most one booking wins
// any given seat.
func (s *BookingService) Book(ctx context.Context, userId uint, input model.CreateReservationInput) (*model.Reservation, error) {
	if input.ShowtimeId == 0 || len(input.Seats) == 0 {
		return nil, utils.MissingParameter()
	}
	seats, err := normalizeSeats(input.Seats)
	if err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, input.ShowtimeId)
	if err != nil {
		return nil, utils.Internal(err)
	}
	defer release()

	var (
		reservation model.Reservation
		occupied    model.StringList
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		showtime, hall, err := lockShowtime(tx, input.ShowtimeId)
		if err != nil {
			return err
		}

		total, ok := TotalPrice(hall, showtime.Price, seats)
		if !ok {
			return utils.NotFound("Seats")
		}
		for _, seatId := range seats {
			if showtime.OccupiedSeats.Contains(seatId) {
				return utils.Conflict(constants.SEATS_ALREADY_RESERVED)
			}
		}

		reservation = model.Reservation{
			Code:       uuid.NewString(),
			UserId:     userId,
			ShowtimeId: showtime.ID,
			Seats:      seats,
			TotalPrice: total,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		occupied = append(append(model.StringList{}, showtime.OccupiedSeats...), seats...)
		return tx.Model(&model.Showtime{}).
			Where("id = ?", showtime.ID).
			Update("occupied_seats", occupied).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.cache.changed(ctx, reservation.ShowtimeId, occupied)
	return &reservation, nil
}

// Cancel releases a reservation owned by userId. A showtime whose start time is
// at or before now minus the grace period can no longer be cancelled.
func (s *BookingService) Cancel(ctx context.Context, userId, reservationId uint) error {
	var reservation model.Reservation
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reservationId, userId).
		First(&reservation).Error; err != nil {
		return notFoundOr(err, "Reservation")
	}

	release, err := s.locks.Acquire(ctx, reservation.ShowtimeId)
	if err != nil {
		return utils.Internal(err)
	}
	defer release()

	var remaining model.StringList
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		showtime, _, err := lockShowtime(tx, reservation.ShowtimeId)
		if err != nil {
			if utils.IsKind(err, utils.KindNotFound) {
				return utils.NotFound("Reservation")
			}
			return err
		}
		// Re-read under the lock: a concurrent cancel or sweep may have removed it.
		if err := tx.Where("id = ? AND user_id = ?", reservationId, userId).First(&reservation).Error; err != nil {
			return notFoundOr(err, "Reservation")
		}
		if HasStarted(showtime, s.clock.Now()) {
			return utils.InvalidState(constants.SHOWTIME_ALREADY_STARTED)
		}

		remaining = make(model.StringList, 0, len(showtime.OccupiedSeats))
		for _, seatId := range showtime.OccupiedSeats {
			if !reservation.Seats.Contains(seatId) {
				remaining = append(remaining, seatId)
			}
		}
		if err := tx.Model(&model.Showtime{}).
			Where("id = ?", showtime.ID).
			Update("occupied_seats", remaining).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Reservation{}, reservation.ID).Error
	})
	if err != nil {
		return asAppError(err)
	}

	s.cache.changed(ctx, reservation.ShowtimeId, remaining)
	return nil
}

// HasStarted applies the shared cutoff: startTime <= now - grace period.
func HasStarted(showtime *model.Showtime, now time.Time) bool {
	return !showtime.StartTime.After(now.Add(-constants.SHOWTIME_GRACE_PERIOD))
}

func lockShowtime(tx *gorm.DB, showtimeId uint) (*model.Showtime, *model.Hall, error) {
	var showtime model.Showtime
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&showtime, showtimeId).Error; err != nil {
		return nil, nil, notFoundOr(err, "Showtime")
	}
	var hall model.Hall
	if err := tx.First(&hall, showtime.HallId).Error; err != nil {
		return nil, nil, err
	}
	return &showtime, &hall, nil
}

// normalizeSeats trims ids and drops duplicates, keeping request order.
func normalizeSeats(seats []string) (model.StringList, error) {
	out := make(model.StringList, 0, len(seats))
	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		seat = strings.TrimSpace(seat)
		if seat == "" {
			return nil, utils.ValidationFailed("Seats must not contain empty values", nil)
		}
		if seen[seat] {
			continue
		}
		seen[seat] = true
		out = append(out, seat)
	}
	return out, nil
}

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(entity)
	}
	return utils.Internal(err)
}

func asAppError(err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.Internal(err)
}
