package constants

import "time"

// SHOWTIME_GRACE_PERIOD is how long after its start a showtime stays cancellable.
// The sweeper deletes showtimes at the same cutoff.
const SHOWTIME_GRACE_PERIOD = 3 * time.Hour

const SWEEP_SCHEDULE = "*/5 * * * *"

const (
	SEAT_CACHE_TTL     = 30 * time.Second
	RESET_CODE_TTL     = 5 * time.Minute
	DEFAULT_PAGE       = 1
	DEFAULT_PAGE_LIMIT = 10
)
