package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	testhelpers "github.com/polkiloo/eatsprint/internal/test"
)

func TestOrphanSweeperSweepUsesCutoff(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stale := model.Order{ID: "stale", PaymentMethod: model.PaymentMethodOnline, Date: now.Add(-2 * time.Hour)}
	fresh := model.Order{ID: "fresh", PaymentMethod: model.PaymentMethodOnline, Date: now.Add(-10 * time.Minute)}
	paid := model.Order{ID: "paid", PaymentMethod: model.PaymentMethodOnline, Payment: true, Date: now.Add(-3 * time.Hour)}
	cod := model.Order{ID: "cod", PaymentMethod: model.PaymentMethodCOD, Date: now.Add(-3 * time.Hour)}
	repo := testhelpers.NewOrderRepositoryStub(stale, fresh, paid, cod)

	s := NewOrphanSweeper(repo, time.Hour, time.Minute, testLogger())
	s.now = func() time.Time { return now }

	removed, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one order purged, got %d", removed)
	}
	for _, id := range []string{"fresh", "paid", "cod"} {
		if _, ok := repo.Snapshot(id); !ok {
			t.Fatalf("order %s must survive the sweep", id)
		}
	}
}

func TestOrphanSweeperRunsPeriodically(t *testing.T) {
	var calls int32
	repo := testhelpers.NewOrderRepositoryStub()
	repo.DeleteUnpaidBeforeFn = func(context.Context, time.Time) (int64, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return 0, errors.New("db down")
		}
		return 2, nil
	}

	s := NewOrphanSweeper(repo, time.Hour, 5*time.Millisecond, testLogger())
	s.Start(context.Background())
	s.Start(context.Background())
	waitFor(t, func() bool { return atomic.LoadInt32(&calls) >= 2 })
	s.Stop()
	s.Stop()

	after := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&calls) != after {
		t.Fatal("sweeper kept running after stop")
	}
}

func TestNewOrphanSweeperDefaultsInterval(t *testing.T) {
	s := NewOrphanSweeper(testhelpers.NewOrderRepositoryStub(), time.Hour, 0, testLogger())
	if s.interval != time.Minute {
		t.Fatalf("expected default interval, got %v", s.interval)
	}
}
