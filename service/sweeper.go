package service

import (
	"context"
	"fmt"
	"log"
	"movie_reservation/constants"
	"movie_reservation/model"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShowtimeSweeper periodically deletes showtimes that started more than the grace
// period ago, together with their reservations.
type ShowtimeSweeper struct {
	db       *gorm.DB
	clock    clockwork.Clock
	cache    *SeatCache
	schedule string
	timeout  time.Duration

	mu        sync.Mutex
	scheduler gocron.Scheduler
	cancel    context.CancelFunc
}

func NewShowtimeSweeper(db *gorm.DB, clock clockwork.Clock, cache *SeatCache, schedule string, timeout time.Duration) *ShowtimeSweeper {
	if schedule == "" {
		schedule = constants.SWEEP_SCHEDULE
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ShowtimeSweeper{
		db:       db,
		clock:    clock,
		cache:    cache,
		schedule: schedule,
		timeout:  timeout,
	}
}

// Start schedules the sweep on a UTC cron. Overlapping ticks are skipped.
func (s *ShowtimeSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return nil
	}

	schedule, err := cron.ParseStandard(s.schedule)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithClock(s.clock),
		gocron.WithLogger(gocron.NewLogger(gocron.LogLevelWarn)),
	)
	if err != nil {
		cancel()
		return err
	}
	_, err = scheduler.NewJob(
		gocron.CronJob(s.schedule, false),
		gocron.NewTask(s.tick, ctx),
		gocron.WithName("showtime-sweeper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return fmt.Errorf("schedule showtime sweeper: %w", err)
	}

	s.cancel = cancel
	s.scheduler = scheduler
	scheduler.Start()
	log.Printf("Showtime sweeper started (%s UTC), next run at %s",
		s.schedule, schedule.Next(s.clock.Now().UTC()).Format(time.RFC3339))
	return nil
}

// Stop cancels a running sweep and waits for the scheduler to shut down.
func (s *ShowtimeSweeper) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return nil
	}
	s.cancel()
	err := s.scheduler.Shutdown()
	s.scheduler = nil
	log.Println("Showtime sweeper stopped")
	return err
}

func (s *ShowtimeSweeper) tick(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	deleted, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("showtime sweep failed, retrying next tick: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Deleted %d expired showtimes", deleted)
	}
}

// Sweep deletes every expired showtime and its reservations in one transaction and
// returns how many showtimes were removed. Running it again is a no-op.
func (s *ShowtimeSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-constants.SHOWTIME_GRACE_PERIOD).UTC()

	var (
		ids     []uint
		deleted int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Showtime{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("start_time <= ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		var err error
		deleted, err = deleteShowtimes(tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.cache.deleted(ctx, ids...)
	return deleted, nil
}

// deleteShowtimes removes the showtimes and, first, every reservation that points at them.
func deleteShowtimes(tx *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := tx.Where("showtime_id IN ?", ids).Delete(&model.Reservation{}).Error; err != nil {
		return 0, err
	}
	result := tx.Where("id IN ?", ids).Delete(&model.Showtime{})
	return result.RowsAffected, result.Error
}
