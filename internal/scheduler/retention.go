// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper removes archived uploads older than a cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) (int, error)
}

// Retention prunes the upload archive on a cron schedule.
type Retention struct {
	cron      *cron.Cron
	sweeper   Sweeper
	retention time.Duration
	log       *logrus.Logger
	now       func() time.Time
}

// NewRetention schedules a sweep of uploads older than retention. schedule
// accepts standard five-field cron specs and descriptors such as "@daily".
func NewRetention(schedule string, retention time.Duration, sweeper Sweeper, log *logrus.Logger) (*Retention, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}
	r := &Retention{
		cron:      cron.New(),
		sweeper:   sweeper,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
	if _, err := r.cron.AddFunc(schedule, r.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins running the schedule in the background.
func (r *Retention) Start() {
	r.cron.Start()
	r.log.Infof("Upload retention scheduled: removing uploads older than %s", r.retention)
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *Retention) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce performs a single sweep.
func (r *Retention) RunOnce() {
	cutoff := r.now().Add(-r.retention)
	removed, err := r.sweeper.Sweep(cutoff)
	if err != nil {
		r.log.Errorf("Upload retention sweep failed after removing %d files: %v", removed, err)
		return
	}
	r.log.Infof("Upload retention sweep removed %d files older than %s", removed, cutoff.Format(time.RFC3339))
}
