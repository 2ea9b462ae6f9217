package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"movie_reservation/constants"
	"movie_reservation/model"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SeatCache caches computed seat availability per showtime and fans occupancy
// changes out over pub/sub. A nil client turns every method into a no-op.
//
// Every invalidation bumps a per-showtime version. Set only stores when the
// version still matches the one read before the database was queried, so a
// result computed before a booking committed is never cached after it.
type SeatCache struct {
	rdb *redis.Client
}

type OccupancyEvent struct {
	ShowtimeId    uint             `json:"showtimeId"`
	OccupiedSeats model.StringList `json:"occupiedSeats"`
	Deleted       bool             `json:"deleted,omitempty"`
}

func NewSeatCache(rdb *redis.Client) *SeatCache {
	return &SeatCache{rdb: rdb}
}

func (c *SeatCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func SeatsKey(showtimeId uint) string {
	return fmt.Sprintf("seats:%d", showtimeId)
}

func SeatsVersionKey(showtimeId uint) string {
	return fmt.Sprintf("seats:%d:version", showtimeId)
}

func OccupancyChannel(showtimeId uint) string {
	return fmt.Sprintf("showtime:%d", showtimeId)
}

func (c *SeatCache) Get(ctx context.Context, showtimeId uint) ([]model.AvailableSeat, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, SeatsKey(showtimeId)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("seat cache get %d: %v", showtimeId, err)
		}
		return nil, false
	}
	var seats []model.AvailableSeat
	if err := json.Unmarshal(raw, &seats); err != nil {
		return nil, false
	}
	return seats, true
}

// setIfCurrent stores ARGV[2] under KEYS[1] for ARGV[3] ms when KEYS[2] still
// holds version ARGV[1].
const setIfCurrent = `
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// Version is read before loading a showtime from the database and handed back to Set.
func (c *SeatCache) Version(ctx context.Context, showtimeId uint) int64 {
	if !c.Enabled() {
		return 0
	}
	version, err := c.rdb.Get(ctx, SeatsVersionKey(showtimeId)).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("seat cache version %d: %v", showtimeId, err)
		return -1
	}
	return version
}

// Set caches seats unless the showtime was invalidated after version was read.
func (c *SeatCache) Set(ctx context.Context, showtimeId uint, version int64, seats []model.AvailableSeat) bool {
	if !c.Enabled() || version < 0 {
		return false
	}
	raw, err := json.Marshal(seats)
	if err != nil {
		return false
	}
	stored, err := c.rdb.Eval(ctx, setIfCurrent,
		[]string{SeatsKey(showtimeId), SeatsVersionKey(showtimeId)},
		strconv.FormatInt(version, 10), string(raw), constants.SEAT_CACHE_TTL.Milliseconds(),
	).Int()
	if err != nil {
		log.Printf("seat cache set %d: %v", showtimeId, err)
		return false
	}
	return stored == 1
}

func (c *SeatCache) Invalidate(ctx context.Context, showtimeIds ...uint) {
	if !c.Enabled() || len(showtimeIds) == 0 {
		return
	}
	keys := make([]string, 0, len(showtimeIds))
	for _, id := range showtimeIds {
		// The bump must land before the delete.
		if err := c.rdb.Incr(ctx, SeatsVersionKey(id)).Err(); err != nil {
			log.Printf("seat cache version bump %d: %v", id, err)
		}
		keys = append(keys, SeatsKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("seat cache invalidate %v: %v", showtimeIds, err)
	}
}

func (c *SeatCache) Publish(ctx context.Context, event OccupancyEvent) {
	if !c.Enabled() {
		return
	}
	if event.OccupiedSeats == nil {
		event.OccupiedSeats = model.StringList{}
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := c.rdb.Publish(ctx, OccupancyChannel(event.ShowtimeId), string(raw)).Err(); err != nil {
		log.Printf("seat feed publish %d: %v", event.ShowtimeId, err)
	}
}

// Subscribe returns nil when the cache is disabled.
func (c *SeatCache) Subscribe(ctx context.Context, showtimeId uint) *redis.PubSub {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Subscribe(ctx, OccupancyChannel(showtimeId))
}

// changed invalidates and publishes after an occupancy mutation commits.
func (c *SeatCache) changed(ctx context.Context, showtimeId uint, occupied model.StringList) {
	c.Invalidate(ctx, showtimeId)
	c.Publish(ctx, OccupancyEvent{ShowtimeId: showtimeId, OccupiedSeats: occupied})
}

func (c *SeatCache) deleted(ctx context.Context, showtimeIds ...uint) {
	c.Invalidate(ctx, showtimeIds...)
	for _, id := range showtimeIds {
		c.Publish(ctx, OccupancyEvent{ShowtimeId: id, Deleted: true})
	}
}
