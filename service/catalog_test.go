package service

import (
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShowtime(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	movie := f.movie(t, "Dune")
	hall := f.hall(t, "Hall A", 1, model.HallSeat{SeatId: "A1", PriceMultiplier: 1})

	showtime, err := f.catalog.CreateShowtime(ctx, model.CreateShowtimeInput{
		MovieId:   movie.ID,
		HallId:    hall.ID,
		StartTime: testNow.Add(time.Hour),
		Price:     utils.Ptr(12.5),
	})
	require.NoError(t, err)
	assert.NotZero(t, showtime.ID)
	assert.Empty(t, showtime.OccupiedSeats)

	_, err = f.catalog.CreateShowtime(ctx, model.CreateShowtimeInput{
		MovieId: movie.ID, HallId: hall.ID, StartTime: testNow, Price: utils.Ptr(1.0),
	})
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	_, err = f.catalog.CreateShowtime(ctx, model.CreateShowtimeInput{
		MovieId: 999, HallId: hall.ID, StartTime: testNow.Add(time.Hour), Price: utils.Ptr(1.0),
	})
	assert.EqualError(t, err, "Movie not found")

	_, err = f.catalog.CreateShowtime(ctx, model.CreateShowtimeInput{
		MovieId: movie.ID, HallId: 999, StartTime: testNow.Add(time.Hour), Price: utils.Ptr(1.0),
	})
	assert.EqualError(t, err, "Hall not found")
}

func TestUpdateShowtimeHallChangeNeedsEmptyShowtime(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)
	other := f.hall(t, "Hall 2", 1, model.HallSeat{SeatId: "1", PriceMultiplier: 1})

	_, err := f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
	require.NoError(t, err)

	_, err = f.catalog.UpdateShowtime(ctx, showtime.ID, model.PatchShowtimeInput{HallId: &other.ID})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	updated, err := f.catalog.UpdateShowtime(ctx, showtime.ID, model.PatchShowtimeInput{Price: utils.Ptr(20.0)})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Price)
	assert.Equal(t, showtime.HallId, updated.HallId)
	assert.Equal(t, model.StringList{"1"}, updated.OccupiedSeats)
}

func TestUpdateShowtimeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	_, showtime := f.scenario(t)
	other := f.hall(t, "Hall 2", 1, model.HallSeat{SeatId: "1", PriceMultiplier: 1})

	past := testNow.Add(-time.Minute)
	_, err := f.catalog.UpdateShowtime(ctx, showtime.ID, model.PatchShowtimeInput{StartTime: &past})
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	_, err = f.catalog.UpdateShowtime(ctx, 999, model.PatchShowtimeInput{Price: utils.Ptr(1.0)})
	assert.EqualError(t, err, "Showtime not found")

	later := testNow.Add(48 * time.Hour)
	updated, err := f.catalog.UpdateShowtime(ctx, showtime.ID, model.PatchShowtimeInput{HallId: &other.ID, StartTime: &later})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.HallId)
	assert.True(t, later.Equal(updated.StartTime))
}

func TestUpdateHallKeepsOccupiedSeats(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)

	_, err := f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"2"}})
	require.NoError(t, err)

	dropsTwo := []model.HallSeat{{SeatId: "1", PriceMultiplier: 1}, {SeatId: "3", PriceMultiplier: 1}}
	_, err = f.catalog.UpdateHall(ctx, showtime.HallId, model.PatchHallInput{Seats: &dropsTwo})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))
	assert.Equal(t, constants.HALL_HAS_OCCUPIED_SEATS, err.(*utils.AppError).Message)

	keepsTwo := []model.HallSeat{{SeatId: "2", PriceMultiplier: 2}, {SeatId: "3", PriceMultiplier: 1}}
	hall, err := f.catalog.UpdateHall(ctx, showtime.HallId, model.PatchHallInput{
		Seats:           &keepsTwo,
		PriceMultiplier: utils.Ptr(1.5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.HallSeats(keepsTwo), hall.Seats)
	assert.Equal(t, 1.5, hall.PriceMultiplier)

	seats, err := f.bookings.AvailableSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.AvailableSeat{{SeatId: "3", Price: 15}}, seats)
}

func TestUpdateHallNameMustBeUnique(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	first := f.hall(t, "Hall 1", 1, model.HallSeat{SeatId: "1", PriceMultiplier: 1})
	f.hall(t, "Hall 2", 1, model.HallSeat{SeatId: "1", PriceMultiplier: 1})

	_, err := f.catalog.UpdateHall(ctx, first.ID, model.PatchHallInput{Name: utils.Ptr("Hall 2")})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = f.catalog.UpdateHall(ctx, 999, model.PatchHallInput{Name: utils.Ptr("Hall 3")})
	assert.EqualError(t, err, "Hall not found")
}

func TestDeleteMovieCascades(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)
	keptMovie := f.movie(t, "Arrival")
	var hall model.Hall
	require.NoError(t, f.db.First(&hall, showtime.HallId).Error)
	kept := f.showtime(t, keptMovie, hall, testNow.Add(time.Hour), 5)

	_, err := f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
	require.NoError(t, err)
	_, err = f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: kept.ID, Seats: []string{"1"}})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteMovie(ctx, showtime.MovieId))
	assert.Equal(t, int64(1), f.count(t, &model.Movie{}))
	assert.Equal(t, int64(1), f.count(t, &model.Showtime{}))
	assert.Equal(t, int64(1), f.count(t, &model.Reservation{}))

	assert.EqualError(t, f.catalog.DeleteMovie(ctx, showtime.MovieId), "Movie not found")
}

func TestDeleteHallCascades(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)

	_, err := f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteHall(ctx, showtime.HallId))
	assert.Zero(t, f.count(t, &model.Hall{}))
	assert.Zero(t, f.count(t, &model.Showtime{}))
	assert.Zero(t, f.count(t, &model.Reservation{}))
	assert.Equal(t, int64(1), f.count(t, &model.Movie{}))
}

func TestDeleteShowtimeCascades(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)

	_, err := f.bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteShowtime(ctx, showtime.ID))
	assert.Zero(t, f.count(t, &model.Showtime{}))
	assert.Zero(t, f.count(t, &model.Reservation{}))
	assert.EqualError(t, f.catalog.DeleteShowtime(ctx, showtime.ID), "Showtime not found")
}
