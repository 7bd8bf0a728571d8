// Package scheduler implements background refreshing of the active location
package scheduler

import (
	"context"
	"log"
	"time"
)

// Refresher re-fetches the active location's weather data
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the active location so a long-lived
// session keeps showing current data. A zero interval disables it.
type Scheduler struct {
	interval  time.Duration
	refresher Refresher
	stopCh    chan struct{}
}

// NewScheduler creates a scheduler for the given refresher
func NewScheduler(interval time.Duration, refresher Refresher) *Scheduler {
	return &Scheduler{
		interval:  interval,
		refresher: refresher,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		return
	}
	go s.run()
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.refresher.Refresh(context.Background()); err != nil {
				log.Printf("Error refreshing weather data: %v\n", err)
			}
		case <-s.stopCh:
			return
		}
	}
}
