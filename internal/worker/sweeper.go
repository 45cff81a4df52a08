package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// OrphanPurger deletes unpaid online orders created before cutoff.
type OrphanPurger interface {
	DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrphanSweeper periodically purges online orders whose payment never completed.
type OrphanSweeper struct {
	orders   OrphanPurger
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewOrphanSweeper constructs sweeper.
func NewOrphanSweeper(orders OrphanPurger, ttl, interval time.Duration, logger *slog.Logger) *OrphanSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &OrphanSweeper{
		orders:   orders,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *OrphanSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the sweeper to finish.
func (s *OrphanSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Sweep runs a single purge pass.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int64, error) {
	return s.orders.DeleteUnpaidBefore(ctx, s.now().Add(-s.ttl))
}

func (s *OrphanSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("orphan order sweep failed", slog.String("error", err.Error()))
				}
				continue
			}
			if removed > 0 {
				s.logger.Info("purged unpaid orders", slog.Int64("count", removed))
			}
		}
	}
}
