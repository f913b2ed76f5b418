package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nvkalinin/datepicker/log"
)

type Sweeper interface {
	Sweep() (int, error)
}

// Janitor periodically removes expired sessions.
type Janitor struct {
	Sweeper  Sweeper
	Interval time.Duration

	stopCh  chan struct{}
	stopped atomic.Bool
}

func NewJanitor(s Sweeper, interval time.Duration) *Janitor {
	return &Janitor{
		Sweeper:  s,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Run sweeps every Interval until Shutdown.
func (j *Janitor) Run() {
	t := time.NewTicker(j.Interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			j.SweepOnce()

		case <-j.stopCh:
			j.stopped.Store(true)
			return
		}
	}
}

func (j *Janitor) SweepOnce() {
	n, err := j.Sweeper.Sweep()
	if err != nil {
		log.Printf("[WARN] store/janitor sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] store/janitor removed %d expired sessions", n)
	}
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	close(j.stopCh)

	for {
		select {
		case <-time.After(10 * time.Millisecond):
			if j.stopped.Load() {
				return nil
			}
		case <-ctx.Done():
			log.Printf("[WARN] store/janitor shutdown timeout")
			return ctx.Err()
		}
	}
}
