package service

import (
	"context"
	"errors"
	"movie_reservation/constants"
	"movie_reservation/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRedisCache(t *testing.T) (*SeatCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSeatCache(rdb), mr
}

func TestSeatCacheDisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	var nilCache *SeatCache
	for _, cache := range []*SeatCache{nilCache, NewSeatCache(nil)} {
		assert.False(t, cache.Enabled())
		_, ok := cache.Get(ctx, 1)
		assert.False(t, ok)
		assert.Zero(t, cache.Version(ctx, 1))
		assert.False(t, cache.Set(ctx, 1, 0, nil))
		cache.changed(ctx, 1, model.StringList{"A1"})
		cache.deleted(ctx, 1, 2)
		assert.Nil(t, cache.Subscribe(ctx, 1))
	}
}

func TestSeatCacheGetSet(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := NewSeatCache(rdb)

	mock.ExpectGet("seats:4").RedisNil()
	mock.ExpectGet("seats:4:version").SetVal("7")
	mock.ExpectEval(setIfCurrent, []string{"seats:4", "seats:4:version"},
		"7", `[{"seatId":"A1","price":12}]`, constants.SEAT_CACHE_TTL.Milliseconds(),
	).SetVal(int64(1))
	mock.ExpectGet("seats:4").SetVal(`[{"seatId":"A1","price":12}]`)

	_, ok := cache.Get(ctx, 4)
	assert.False(t, ok)
	version := cache.Version(ctx, 4)
	assert.Equal(t, int64(7), version)
	assert.True(t, cache.Set(ctx, 4, version, []model.AvailableSeat{{SeatId: "A1", Price: 12}}))
	seats, ok := cache.Get(ctx, 4)
	require.True(t, ok)
	assert.Equal(t, []model.AvailableSeat{{SeatId: "A1", Price: 12}}, seats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCacheChangeInvalidatesAndPublishes(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := NewSeatCache(rdb)

	mock.ExpectIncr("seats:4:version").SetVal(1)
	mock.ExpectDel("seats:4").SetVal(1)
	mock.ExpectPublish("showtime:4", `{"showtimeId":4,"occupiedSeats":["A1","A2"]}`).SetVal(1)
	mock.ExpectIncr("seats:5:version").SetVal(3)
	mock.ExpectIncr("seats:6:version").SetVal(1)
	mock.ExpectDel("seats:5", "seats:6").SetVal(2)
	mock.ExpectPublish("showtime:5", `{"showtimeId":5,"occupiedSeats":[],"deleted":true}`).SetVal(0)
	mock.ExpectPublish("showtime:6", `{"showtimeId":6,"occupiedSeats":[],"deleted":true}`).SetVal(0)

	cache.changed(ctx, 4, model.StringList{"A1", "A2"})
	cache.deleted(ctx, 5, 6)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCacheRefusesWriteAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)
	seats := []model.AvailableSeat{{SeatId: "A1", Price: 12}}

	stale := cache.Version(ctx, 4)
	cache.Invalidate(ctx, 4)
	assert.False(t, cache.Set(ctx, 4, stale, seats))
	assert.False(t, mr.Exists(SeatsKey(4)))

	current := cache.Version(ctx, 4)
	assert.Equal(t, stale+1, current)
	assert.True(t, cache.Set(ctx, 4, current, seats))
	cached, ok := cache.Get(ctx, 4)
	require.True(t, ok)
	assert.Equal(t, seats, cached)
	assert.Equal(t, constants.SEAT_CACHE_TTL, mr.TTL(SeatsKey(4)))
}

func TestAvailableSeatsNotCachedAcrossConcurrentBooking(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)
	cache, mr := newRedisCache(t)
	bookings := NewBookingService(f.db, f.clock, f.locks, cache)

	// Seat 1 gets booked after the availability read loaded the hall but before
	// the result is written to the cache.
	booked := false
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:book_after_hall_load", func(tx *gorm.DB) {
		if booked || tx.Statement.Table != "halls" {
			return
		}
		booked = true
		_, err := bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
		assert.NoError(t, err)
	}))

	seats, err := bookings.AvailableSeats(ctx, showtime.ID)
	require.NoError(t, err)
	require.True(t, booked)
	assert.Len(t, seats, 2)
	assert.False(t, mr.Exists(SeatsKey(showtime.ID)))
	assert.Equal(t, model.StringList{"1"}, f.occupied(t, showtime.ID))

	want := []model.AvailableSeat{{SeatId: "2", Price: 15}}
	seats, err = bookings.AvailableSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, want, seats)

	cached, ok := cache.Get(ctx, showtime.ID)
	require.True(t, ok)
	assert.Equal(t, want, cached)
}

func TestSeatCacheRedisErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := NewSeatCache(rdb)

	mock.ExpectGet("seats:1").SetErr(errors.New("connection refused"))
	mock.ExpectGet("seats:1:version").SetErr(errors.New("connection refused"))
	mock.ExpectIncr("seats:1:version").SetErr(errors.New("connection refused"))
	mock.ExpectDel("seats:1").SetErr(errors.New("connection refused"))

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	version := cache.Version(ctx, 1)
	assert.False(t, cache.Set(ctx, 1, version, nil))
	cache.Invalidate(ctx, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingInvalidatesSeatCache(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	user, showtime := f.scenario(t)

	rdb, mock := redismock.NewClientMock()
	bookings := NewBookingService(f.db, f.clock, f.locks, NewSeatCache(rdb))

	mock.ExpectIncr(SeatsVersionKey(showtime.ID)).SetVal(1)
	mock.ExpectDel(SeatsKey(showtime.ID)).SetVal(1)
	mock.ExpectPublish(OccupancyChannel(showtime.ID), `{"showtimeId":1,"occupiedSeats":["1"]}`).SetVal(1)

	_, err := bookings.Book(ctx, user.ID, model.CreateReservationInput{ShowtimeId: showtime.ID, Seats: []string{"1"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetCodes(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	codes := NewResetCodes(rdb)
	codes.generate = func() (string, error) { return "123456", nil }

	mock.ExpectSet("reset:john.doe@example.com", "123456", 5*time.Minute).SetVal("OK")
	mock.ExpectGet("reset:john.doe@example.com").SetVal("123456")
	mock.ExpectGet("reset:john.doe@example.com").SetVal("123456")
	mock.ExpectDel("reset:john.doe@example.com").SetVal(1)
	mock.ExpectGet("reset:john.doe@example.com").RedisNil()

	code, err := codes.Issue(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	ok, err := codes.Consume(ctx, "john.doe@example.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = codes.Consume(ctx, "john.doe@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = codes.Consume(ctx, "john.doe@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetCodesWithoutRedis(t *testing.T) {
	_, err := NewResetCodes(nil).Issue(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, ErrResetCodesDisabled)
}

func TestRandomCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}
