package weekly

import (
	"context"
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../../mocks/runner.go -package=mocks . Runner

// Runner is one dispatcher pass.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs a Runner once a week at a fixed weekday and time. Triggers
// missed while the process was down are not replayed: on start it waits for
// the next future instant.
type Scheduler struct {
	runner Runner

	weekday  time.Weekday
	hour     int
	minute   int
	location *time.Location

	now   func() time.Time
	after func(d time.Duration) <-chan time.Time
}

type SchedulerOption func(*Scheduler)

// WithTimer replaces time.Now and time.After.
func WithTimer(now func() time.Time, after func(d time.Duration) <-chan time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.now = now
		s.after = after
	}
}

func NewScheduler(
	runner Runner,
	weekday time.Weekday,
	hour, minute int,
	location *time.Location,
	opts ...SchedulerOption,
) *Scheduler {
	if location == nil {
		location = time.UTC
	}

	s := &Scheduler{
		runner:   runner,
		weekday:  weekday,
		hour:     hour,
		minute:   minute,
		location: location,
		now:      time.Now,
		after:    time.After,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Next returns the trigger instant following now.
func (s *Scheduler) Next() time.Time {
	return domain.NextWeekly(s.now(), s.weekday, s.hour, s.minute, s.location)
}

// Start blocks until ctx is cancelled. A pass in flight gets the same ctx.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		next := s.Next()

		log.Info("next weekly pass scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			log.Info("weekly scheduler shutting down...")
			return

		case <-s.after(next.Sub(s.now())):
			if err := s.runner.Run(ctx); err != nil {
				log.Error("weekly pass failed", zap.Error(err))
			}
		}
	}
}
