package jobs

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
)

// Schedule holds the cron expressions (five fields, minute first).
type Schedule struct {
	StandingSweep string
}

type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the runner's jobs. Expressions are read in clock.Location.
func NewScheduler(r *Runner, sched Schedule) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(clock.Location))

	if _, err := c.AddFunc(sched.StandingSweep, r.RefreshStanding); err != nil {
		return nil, fmt.Errorf("registering standing sweep %q: %w", sched.StandingSweep, err)
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("cron scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("cron scheduler stopped")
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
