package service

import (
	"context"
	"sync"
)

// ShowtimeLocks hands out one mutual-exclusion slot per showtime. Bookings and
// cancellations on the same showtime queue behind each other; different showtimes
// never contend. Slots are dropped once nobody holds or waits for them.
type ShowtimeLocks struct {
	mu    sync.Mutex
	slots map[uint]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func NewShowtimeLocks() *ShowtimeLocks {
	return &ShowtimeLocks{slots: make(map[uint]*lockSlot)}
}

// Acquire blocks until the showtime's slot is free or ctx is done.
func (l *ShowtimeLocks) Acquire(ctx context.Context, showtimeId uint) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[showtimeId]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[showtimeId] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.put(showtimeId, slot)
			})
		}, nil
	case <-ctx.Done():
		l.put(showtimeId, slot)
		return nil, ctx.Err()
	}
}

func (l *ShowtimeLocks) put(showtimeId uint, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, showtimeId)
	}
}

func (l *ShowtimeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
