package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// SessionReaper periodically deletes expired session rows. Snapshots need no
// reaping: their cache TTL is bounded by the session expiry. Lookups already
// reject expired rows, so the reaper only bounds table growth.
type SessionReaper struct {
	sessionRepo domain.SessionRepository
	interval    time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionReaper creates a new session reaper
func NewSessionReaper(sessionRepo domain.SessionRepository, interval time.Duration) *SessionReaper {
	return &SessionReaper{
		sessionRepo: sessionRepo,
		interval:    interval,
	}
}

// Start begins the periodic reap loop.
func (r *SessionReaper) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop stops the reaper and waits for the running pass to finish.
func (r *SessionReaper) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *SessionReaper) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				log.Printf("session reaper tick: %v", err)
			}
		}
	}
}

// RunOnce executes a single reap pass.
func (r *SessionReaper) RunOnce(ctx context.Context) error {
	n, err := r.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("session reaper: removed %d expired sessions", n)
	}
	return nil
}
