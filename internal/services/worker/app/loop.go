package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/timeouts"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	notifications "github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context, now time.Time) error

// runEvery runs task once immediately and then on every tick until ctx ends.
// The loop is single-goroutine, so a tick never overlaps a running task.
func runEvery(ctx context.Context, name string, interval time.Duration, clock func() time.Time, task Task) {
	if interval <= 0 || task == nil {
		return
	}
	if clock == nil {
		clock = time.Now
	}
	runOnce(ctx, name, clock, task)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, name, clock, task)
		}
	}
}

func runOnce(ctx context.Context, name string, clock func() time.Time, task Task) {
	if ctx.Err() != nil {
		return
	}
	taskCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOperation)
	defer cancel()
	err := task(taskCtx, clock())
	switch {
	case err == nil:
	case errors.Is(err, kitchen.ErrSweepInProgress):
		log.Printf("%s skipped: another worker holds the lease", name)
	case ctx.Err() != nil:
	default:
		log.Printf("%s failed: %v", name, err)
	}
}

// Sweeper runs the order lifecycle sweep.
type Sweeper interface {
	SweepPendingOrders(ctx context.Context, now time.Time) (kitchen.SweepResult, error)
}

func sweepTask(sweeper Sweeper) Task {
	return func(ctx context.Context, now time.Time) error {
		result, err := sweeper.SweepPendingOrders(ctx, now)
		if result.UpdatedCount > 0 {
			log.Printf("order sweep queued %d orders", result.UpdatedCount)
		}
		return err
	}
}

// Dispatcher delivers due outbox messages.
type Dispatcher interface {
	DispatchDue(ctx context.Context, now time.Time) (notifications.DispatchResult, error)
}

func dispatchTask(dispatcher Dispatcher) Task {
	return func(ctx context.Context, now time.Time) error {
		result, err := dispatcher.DispatchDue(ctx, now)
		if result.Sent+result.Retried+result.Dead > 0 {
			log.Printf("outbox dispatch sent=%d retried=%d dead=%d", result.Sent, result.Retried, result.Dead)
		}
		return err
	}
}
