// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Advancer moves matchweeks whose start date or deadline has passed.
type Advancer interface {
	AdvanceDue(ctx context.Context) (opened, closed int, err error)
}

// Scheduler runs the matchweek advancer on a fixed interval.
type Scheduler struct {
	sched gocron.Scheduler
}

// New registers the advance job. Runs never overlap; a run that is still
// going when the next one is due pushes that one back.
func New(adv Advancer, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler interval must be positive, got %v", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()

			opened, closed, err := adv.AdvanceDue(ctx)
			if err != nil {
				slog.Error("matchweek advance failed", "error", err)
				return
			}
			if opened > 0 || closed > 0 {
				slog.Info("matchweeks advanced", "opened", opened, "closed", closed)
			}
		}),
		gocron.WithName("advance-matchweeks"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		sched.Shutdown()
		return nil, fmt.Errorf("failed to register advance job: %w", err)
	}

	return &Scheduler{sched: sched}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Shutdown waits for a running job to finish.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
