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

var tracer = otel.Tracer("github.com/wsaeed77/spice-loop/internal/services/notifications/domain")

const (
	defaultBatchSize     = 20
	defaultLeaseTTL      = time.Minute
	defaultMaxAttempts   = 8
	defaultRetryBackoff  = 30 * time.Second
	defaultRetryMaxDelay = time.Hour
)

// Sender delivers one rendered message on its channel.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// DispatchStore is the outbox persistence used by the dispatcher.
type DispatchStore interface {
	LeaseDueMessages(ctx context.Context, owner string, limit int, leaseTTL time.Duration, now time.Time) ([]Message, error)
	MarkSent(ctx context.Context, messageID string, owner string, now time.Time) error
	MarkRetry(ctx context.Context, messageID string, owner string, nextAttemptAt time.Time, lastError string, now time.Time) error
	MarkDead(ctx context.Context, messageID string, owner string, lastError string, now time.Time) error
}

// DispatchConfig tunes one dispatcher.
type DispatchConfig struct {
	Owner         string
	BatchSize     int
	LeaseTTL      time.Duration
	MaxAttempts   int
	RetryBackoff  time.Duration
	RetryMaxDelay time.Duration
}

// DispatchResult counts the outcomes of one dispatch pass.
type DispatchResult struct {
	Sent    int
	Retried int
	Dead    int
}

// Dispatcher delivers due outbox rows through per-channel senders.
type Dispatcher struct {
	store   DispatchStore
	senders map[Channel]Sender
	cfg     DispatchConfig
}

// NewDispatcher builds a dispatcher, filling zero config values with defaults.
func NewDispatcher(store DispatchStore, senders map[Channel]Sender, cfg DispatchConfig) *Dispatcher {
	if cfg.Owner == "" {
		cfg.Owner = "dispatcher"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = defaultLeaseTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = defaultRetryMaxDelay
	}
	return &Dispatcher{store: store, senders: senders, cfg: cfg}
}

// RetryDelay returns the backoff before retry number attempt (1-based):
// base doubled per previous attempt, capped at max.
func RetryDelay(base time.Duration, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// DispatchDue leases one batch of due messages and delivers them. A failed
// send is rescheduled, or marked dead once it has used every attempt.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) (result DispatchResult, err error) {
	ctx, span := tracer.Start(ctx, "notifications.DispatchDue")
	defer func() {
		span.SetAttributes(
			attribute.Int("dispatch.sent", result.Sent),
			attribute.Int("dispatch.retried", result.Retried),
			attribute.Int("dispatch.dead", result.Dead),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	now = now.UTC()
	messages, err := d.store.LeaseDueMessages(ctx, d.cfg.Owner, d.cfg.BatchSize, d.cfg.LeaseTTL, now)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("lease outbox messages: %w", err)
	}
	for _, message := range messages {
		sender, ok := d.senders[message.Channel]
		if !ok || sender == nil {
			if err := d.store.MarkDead(ctx, message.ID, d.cfg.Owner, "no sender for channel "+string(message.Channel), now); err != nil {
				return result, fmt.Errorf("mark message %s dead: %w", message.ID, err)
			}
			result.Dead++
			continue
		}

		sendErr := sender.Send(ctx, message)
		if sendErr == nil {
			if err := d.store.MarkSent(ctx, message.ID, d.cfg.Owner, now); err != nil {
				return result, fmt.Errorf("mark message %s sent: %w", message.ID, err)
			}
			result.Sent++
			continue
		}

		attempt := message.AttemptCount + 1
		log.Printf("deliver %s message %s attempt %d: %v", message.Channel, message.ID, attempt, sendErr)
		if attempt >= d.cfg.MaxAttempts {
			if err := d.store.MarkDead(ctx, message.ID, d.cfg.Owner, sendErr.Error(), now); err != nil {
				return result, fmt.Errorf("mark message %s dead: %w", message.ID, err)
			}
			result.Dead++
			continue
		}
		next := now.Add(RetryDelay(d.cfg.RetryBackoff, d.cfg.RetryMaxDelay, attempt))
		if err := d.store.MarkRetry(ctx, message.ID, d.cfg.Owner, next, sendErr.Error(), now); err != nil {
			return result, fmt.Errorf("reschedule message %s: %w", message.ID, err)
		}
		result.Retried++
	}
	return result, nil
}
