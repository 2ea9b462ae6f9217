package service

import (
	"context"
	"errors"
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService holds the catalog writes that touch seat occupancy or cascade
// into showtimes and reservations.
type CatalogService struct {
	db    *gorm.DB
	clock clockwork.Clock
	locks *ShowtimeLocks
	cache *SeatCache
}

func NewCatalogService(db *gorm.DB, clock clockwork.Clock, locks *ShowtimeLocks, cache *SeatCache) *CatalogService {
	return &CatalogService{db: db, clock: clock, locks: locks, cache: cache}
}

func (s *CatalogService) CreateShowtime(ctx context.Context, input model.CreateShowtimeInput) (*model.Showtime, error) {
	if !input.StartTime.After(s.clock.Now()) {
		return nil, utils.ValidationFailed(constants.SHOWTIME_IN_PAST, nil)
	}
	if input.Price == nil || *input.Price < 0 {
		return nil, utils.MissingParameter()
	}

	db := s.db.WithContext(ctx)
	if err := exists(db, &model.Movie{}, input.MovieId, "Movie"); err != nil {
		return nil, err
	}
	if err := exists(db, &model.Hall{}, input.HallId, "Hall"); err != nil {
		return nil, err
	}

	showtime := model.Showtime{
		MovieId:       input.MovieId,
		HallId:        input.HallId,
		StartTime:     input.StartTime.UTC(),
		Price:         *input.Price,
		OccupiedSeats: model.StringList{},
	}
	if err := db.Create(&showtime).Error; err != nil {
		return nil, utils.Internal(err)
	}
	return &showtime, nil
}

// UpdateShowtime applies the non-nil fields of patch. The hall of a showtime with
// reserved seats cannot change, since those seats would no longer exist.
func (s *CatalogService) UpdateShowtime(ctx context.Context, showtimeId uint, patch model.PatchShowtimeInput) (*model.Showtime, error) {
	if patch.StartTime != nil && !patch.StartTime.After(s.clock.Now()) {
		return nil, utils.ValidationFailed(constants.SHOWTIME_IN_PAST, nil)
	}

	release, err := s.locks.Acquire(ctx, showtimeId)
	if err != nil {
		return nil, utils.Internal(err)
	}
	defer release()

	var showtime model.Showtime
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&showtime, showtimeId).Error; err != nil {
			return notFoundOr(err, "Showtime")
		}

		updates := map[string]any{}
		if patch.MovieId != nil && *patch.MovieId != showtime.MovieId {
			if err := exists(tx, &model.Movie{}, *patch.MovieId, "Movie"); err != nil {
				return err
			}
			updates["movie_id"] = *patch.MovieId
		}
		if patch.HallId != nil && *patch.HallId != showtime.HallId {
			if len(showtime.OccupiedSeats) > 0 {
				return utils.InvalidState(constants.SHOWTIME_HAS_OCCUPIED)
			}
			if err := exists(tx, &model.Hall{}, *patch.HallId, "Hall"); err != nil {
				return err
			}
			updates["hall_id"] = *patch.HallId
		}
		if patch.StartTime != nil {
			updates["start_time"] = patch.StartTime.UTC()
		}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&model.Showtime{}).Where("id = ?", showtime.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&showtime, showtime.ID).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.cache.changed(ctx, showtime.ID, showtime.OccupiedSeats)
	return &showtime, nil
}

func (s *CatalogService) DeleteShowtime(ctx context.Context, showtimeId uint) error {
	release, err := s.locks.Acquire(ctx, showtimeId)
	if err != nil {
		return utils.Internal(err)
	}
	defer release()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var showtime model.Showtime
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&showtime, showtimeId).Error; err != nil {
			return notFoundOr(err, "Showtime")
		}
		_, err := deleteShowtimes(tx, []uint{showtime.ID})
		return err
	})
	if err != nil {
		return asAppError(err)
	}
	s.cache.deleted(ctx, showtimeId)
	return nil
}

// UpdateHall applies the non-nil fields of patch. A new seat layout must keep every
// seat that is occupied on one of the hall's showtimes.
func (s *CatalogService) UpdateHall(ctx context.Context, hallId uint, patch model.PatchHallInput) (*model.Hall, error) {
	var (
		hall        model.Hall
		showtimeIds []uint
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hall, hallId).Error; err != nil {
			return notFoundOr(err, "Hall")
		}

		updates := map[string]any{}
		if patch.Name != nil && *patch.Name != hall.Name {
			var count int64
			if err := tx.Model(&model.Hall{}).Where("name = ? AND id <> ?", *patch.Name, hall.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.Conflict(constants.HALL_ALREADY_EXISTS)
			}
			updates["name"] = *patch.Name
		}
		if patch.Seats != nil {
			layout := model.HallSeats(*patch.Seats)
			var showtimes []model.Showtime
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("hall_id = ?", hall.ID).
				Find(&showtimes).Error; err != nil {
				return err
			}
			ids := layout.Ids()
			for _, showtime := range showtimes {
				showtimeIds = append(showtimeIds, showtime.ID)
				for _, seatId := range showtime.OccupiedSeats {
					if !ids.Contains(seatId) {
						return utils.InvalidState(constants.HALL_HAS_OCCUPIED_SEATS)
					}
				}
			}
			updates["seats"] = layout
		}
		if patch.PriceMultiplier != nil {
			updates["price_multiplier"] = *patch.PriceMultiplier
			if showtimeIds == nil {
				if err := tx.Model(&model.Showtime{}).Where("hall_id = ?", hall.ID).Pluck("id", &showtimeIds).Error; err != nil {
					return err
				}
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&model.Hall{}).Where("id = ?", hall.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&hall, hall.ID).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.cache.Invalidate(ctx, showtimeIds...)
	return &hall, nil
}

// DeleteHall removes the hall with its showtimes and their reservations.
func (s *CatalogService) DeleteHall(ctx context.Context, hallId uint) error {
	return s.deleteWithShowtimes(ctx, &model.Hall{}, hallId, "hall_id", "Hall")
}

// DeleteMovie removes the movie with its showtimes and their reservations.
func (s *CatalogService) DeleteMovie(ctx context.Context, movieId uint) error {
	return s.deleteWithShowtimes(ctx, &model.Movie{}, movieId, "movie_id", "Movie")
}

func (s *CatalogService) deleteWithShowtimes(ctx context.Context, owner any, id uint, column, entity string) error {
	var ids []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(owner, id).Error; err != nil {
			return notFoundOr(err, entity)
		}
		if err := tx.Model(&model.Showtime{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(column+" = ?", id).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if _, err := deleteShowtimes(tx, ids); err != nil {
			return err
		}
		return tx.Delete(owner, id).Error
	})
	if err != nil {
		return asAppError(err)
	}
	s.cache.deleted(ctx, ids...)
	return nil
}

func exists(db *gorm.DB, dest any, id uint, entity string) error {
	err := db.Select("id").First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(entity)
	}
	if err != nil {
		return utils.Internal(err)
	}
	return nil
}
