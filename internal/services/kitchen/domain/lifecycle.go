package domain

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// SweepLeaseName is the job lease that serializes order sweeps.
	SweepLeaseName = "order-sweep"
	// QueueWindow is how close to delivery a pending order enters the queue.
	QueueWindow = 3 * time.Hour

	defaultSweepLeaseTTL = 4 * time.Minute
)

var tracer = otel.Tracer("github.com/wsaeed77/spice-loop/internal/services/kitchen/domain")

// Locker grants named, expiring leases shared across processes.
type Locker interface {
	Acquire(ctx context.Context, name string, owner string, ttl time.Duration, now time.Time) (bool, error)
	Release(ctx context.Context, name string, owner string) error
}

// TransitionObserver is told about every order the sweep queued.
type TransitionObserver interface {
	OrderQueued(ctx context.Context, order Order) error
}

// LifecycleStore is the order persistence the sweep needs.
type LifecycleStore interface {
	ListScheduledPendingOrders(ctx context.Context) ([]Order, error)
	TransitionOrderStatus(ctx context.Context, orderID string, from OrderStatus, to OrderStatus, now time.Time) (bool, error)
}

// SweepResult reports one sweep run.
type SweepResult struct {
	UpdatedCount int
}

// LifecycleOptions tunes the sweep. Locker and Observer are optional.
type LifecycleOptions struct {
	Locker   Locker
	Owner    string
	LeaseTTL time.Duration
	Observer TransitionObserver
}

// Lifecycle advances pending orders as their delivery time approaches.
type Lifecycle struct {
	calendar Calendar
	orders   LifecycleStore
	locker   Locker
	owner    string
	leaseTTL time.Duration
	observer TransitionObserver
}

// NewLifecycle constructs the order sweep.
func NewLifecycle(calendar Calendar, orders LifecycleStore, opts LifecycleOptions) *Lifecycle {
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = defaultSweepLeaseTTL
	}
	return &Lifecycle{
		calendar: calendar,
		orders:   orders,
		locker:   opts.Locker,
		owner:    opts.Owner,
		leaseTTL: opts.LeaseTTL,
		observer: opts.Observer,
	}
}

// ShouldQueue reports whether an order due at deliveryAt enters the queue
// at now: the remaining time must be between zero and QueueWindow inclusive.
// Orders already past due are left alone.
func ShouldQueue(deliveryAt time.Time, now time.Time) bool {
	remaining := deliveryAt.Sub(now)
	return remaining >= 0 && remaining <= QueueWindow
}

// SweepPendingOrders moves every pending order due within QueueWindow to
// in_queue. Rerunning with unchanged state writes nothing. A failed write
// stops the run and the count so far is returned with the error.
func (l *Lifecycle) SweepPendingOrders(ctx context.Context, now time.Time) (result SweepResult, err error) {
	ctx, span := tracer.Start(ctx, "kitchen.SweepPendingOrders")
	defer func() {
		span.SetAttributes(attribute.Int("sweep.updated_count", result.UpdatedCount))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if l.locker != nil {
		acquired, lockErr := l.locker.Acquire(ctx, SweepLeaseName, l.owner, l.leaseTTL, now)
		if lockErr != nil {
			return SweepResult{}, fmt.Errorf("acquire sweep lease: %w", lockErr)
		}
		if !acquired {
			return SweepResult{}, ErrSweepInProgress
		}
		defer func() {
			if releaseErr := l.locker.Release(context.WithoutCancel(ctx), SweepLeaseName, l.owner); releaseErr != nil {
				log.Printf("release sweep lease: %v", releaseErr)
			}
		}()
	}

	orders, err := l.orders.ListScheduledPendingOrders(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list pending orders: %w", err)
	}
	for _, order := range orders {
		deliveryAt, ok := order.DeliveryAt(l.calendar)
		if !ok || !ShouldQueue(deliveryAt, now) {
			continue
		}
		changed, writeErr := l.orders.TransitionOrderStatus(ctx, order.ID, OrderPending, OrderInQueue, now.UTC())
		if writeErr != nil {
			return result, fmt.Errorf("queue order %s: %w", order.ID, writeErr)
		}
		if !changed {
			continue
		}
		result.UpdatedCount++
		order.Status = OrderInQueue
		order.UpdatedAt = now.UTC()
		if l.observer != nil {
			if obsErr := l.observer.OrderQueued(ctx, order); obsErr != nil {
				log.Printf("observe queued order %s: %v", order.ID, obsErr)
			}
		}
	}
	return result, nil
}
