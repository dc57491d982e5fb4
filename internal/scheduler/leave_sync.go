package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// leaveMirrorTTL caps a freshly-created ha:leave mirror. An existing key
// keeps its remaining TTL; without this cap a mirror created from scratch
// would never expire and only the leave-end delete could remove it.
const leaveMirrorTTL = 24 * time.Hour

// LeaveSyncWorker runs the two periodic leave-boundary tasks. Each tick is
// read-then-write over a small row set; a single instance is assumed, and
// idempotence comes from the per-period processed flag plus the on-leave
// filter, not from any lock.
type LeaveSyncWorker struct {
	leaveRepo domain.LeaveRepository
	cache     domain.CacheStore
	audit     domain.AuditLogger
	interval  time.Duration
	clock     func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLeaveSyncWorker creates a new leave synchronizer
func NewLeaveSyncWorker(leaveRepo domain.LeaveRepository, cache domain.CacheStore, audit domain.AuditLogger, interval time.Duration) *LeaveSyncWorker {
	return &LeaveSyncWorker{
		leaveRepo: leaveRepo,
		cache:     cache,
		audit:     audit,
		interval:  interval,
		clock:     time.Now,
	}
}

// Start begins the periodic sync loop.
func (w *LeaveSyncWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the worker and waits for the running tick to finish.
func (w *LeaveSyncWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *LeaveSyncWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				log.Printf("leave sync tick: %v", err)
			}
		}
	}
}

// RunOnce executes a single sync cycle. Both tasks are attempted even if the
// first fails; errors are combined.
func (w *LeaveSyncWorker) RunOnce(ctx context.Context) error {
	now := w.clock()
	var errs []error

	if err := w.processLeaveStarts(ctx, now); err != nil {
		errs = append(errs, err)
	}
	if err := w.processLeaveEnds(ctx, now); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// processLeaveStarts moves accounts whose leave window just opened onto
// leave. The durable record flips first; then the coarse ha:available
// mirror is dropped outright while the on-leave flag is merged into the
// ha:leave snapshot, preserving whatever else it holds.
func (w *LeaveSyncWorker) processLeaveStarts(ctx context.Context, now time.Time) error {
	periods, err := w.leaveRepo.FindStarting(ctx, now)
	if err != nil {
		return fmt.Errorf("find starting leave periods: %w", err)
	}

	var errs []error
	for i := range periods {
		period := &periods[i]
		if err := w.leaveRepo.StartLeave(ctx, period); err != nil {
			errs = append(errs, fmt.Errorf("start leave %d: %w", period.ID, err))
			continue
		}

		if err := w.cache.Del(ctx, domain.HAAvailableKey); err != nil {
			log.Printf("leave start: drop availability mirror: %v", err)
		}
		if err := w.mergeLeaveFlag(ctx, true); err != nil {
			log.Printf("leave start: merge leave mirror: %v", err)
		}

		w.audit.Log(ctx, domain.AuditEvent{
			EventType: domain.LeaveStartedEvent,
			AccountID: period.AccountID,
			Success:   true,
		})
	}
	return errors.Join(errs...)
}

// processLeaveEnds returns accounts whose leave window has closed. The
// ha:leave mirror is deleted outright, forcing the next availability read to
// fall back to the durable flags.
func (w *LeaveSyncWorker) processLeaveEnds(ctx context.Context, now time.Time) error {
	periods, err := w.leaveRepo.FindEnding(ctx, now)
	if err != nil {
		return fmt.Errorf("find ending leave periods: %w", err)
	}

	var errs []error
	for i := range periods {
		period := &periods[i]
		if err := w.leaveRepo.EndLeave(ctx, period); err != nil {
			errs = append(errs, fmt.Errorf("end leave %d: %w", period.ID, err))
			continue
		}

		if err := w.cache.Del(ctx, domain.HALeaveKey); err != nil {
			log.Printf("leave end: drop leave mirror: %v", err)
		}

		w.audit.Log(ctx, domain.AuditEvent{
			EventType: domain.LeaveEndedEvent,
			AccountID: period.AccountID,
			Success:   true,
		})
	}
	return errors.Join(errs...)
}

// mergeLeaveFlag patches is_on_leave into the ha:leave snapshot without
// clobbering other fields. An existing key keeps its remaining TTL; a fresh
// one gets leaveMirrorTTL.
func (w *LeaveSyncWorker) mergeLeaveFlag(ctx context.Context, onLeave bool) error {
	var mirror domain.AvailabilityMirror
	if data, err := w.cache.Get(ctx, domain.HALeaveKey); err == nil {
		if err := json.Unmarshal([]byte(data), &mirror); err != nil {
			return fmt.Errorf("corrupt leave mirror: %w", err)
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		return err
	}

	mirror.IsOnLeave = &onLeave

	data, err := json.Marshal(&mirror)
	if err != nil {
		return err
	}

	ttl, err := w.cache.TTL(ctx, domain.HALeaveKey)
	if err != nil || ttl <= 0 {
		ttl = leaveMirrorTTL
	}
	return w.cache.Set(ctx, domain.HALeaveKey, string(data), ttl)
}
