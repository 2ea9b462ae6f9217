package service

import (
	"context"
	"movie_reservation/database"
	"movie_reservation/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	clock    *clockwork.FakeClock
	locks    *ShowtimeLocks
	bookings *BookingService
	catalog  *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	clock := clockwork.NewFakeClockAt(testNow)
	locks := NewShowtimeLocks()
	cache := NewSeatCache(nil)
	return &fixture{
		db:       db,
		clock:    clock,
		locks:    locks,
		bookings: NewBookingService(db, clock, locks, cache),
		catalog:  NewCatalogService(db, clock, locks, cache),
	}
}

func (f *fixture) user(t *testing.T, email, role string) model.User {
	t.Helper()
	user := model.User{FirstName: "John", LastName: "Doe", Email: email, Password: "hash", Role: role}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) movie(t *testing.T, title string) model.Movie {
	t.Helper()
	movie := model.Movie{
		Title:       title,
		Slug:        uuid.NewString(),
		Description: "A movie",
		PosterUrl:   "https://img.example.com/" + uuid.NewString() + ".png",
		Genres:      model.StringList{"drama"},
	}
	require.NoError(t, f.db.Create(&movie).Error)
	return movie
}

func (f *fixture) hall(t *testing.T, name string, multiplier float64, seats ...model.HallSeat) model.Hall {
	t.Helper()
	hall := model.Hall{Name: name, Seats: seats, PriceMultiplier: multiplier}
	require.NoError(t, f.db.Create(&hall).Error)
	return hall
}

func (f *fixture) showtime(t *testing.T, movie model.Movie, hall model.Hall, start time.Time, price float64) model.Showtime {
	t.Helper()
	showtime := model.Showtime{
		MovieId:       movie.ID,
		HallId:        hall.ID,
		StartTime:     start.UTC(),
		Price:         price,
		OccupiedSeats: model.StringList{},
	}
	require.NoError(t, f.db.Create(&showtime).Error)
	return showtime
}

// scenario is one hall with seats 1 (x1.0) and 2 (x1.5), and a showtime priced 10
// starting in one day.
func (f *fixture) scenario(t *testing.T) (model.User, model.Showtime) {
	t.Helper()
	user := f.user(t, "john.doe@example.com", "user")
	movie := f.movie(t, "Inception")
	hall := f.hall(t, "Hall 1", 1.0,
		model.HallSeat{SeatId: "1", PriceMultiplier: 1.0},
		model.HallSeat{SeatId: "2", PriceMultiplier: 1.5},
	)
	return user, f.showtime(t, movie, hall, testNow.Add(24*time.Hour), 10)
}

func (f *fixture) occupied(t *testing.T, showtimeId uint) model.StringList {
	t.Helper()
	var showtime model.Showtime
	require.NoError(t, f.db.First(&showtime, showtimeId).Error)
	return showtime.OccupiedSeats
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
