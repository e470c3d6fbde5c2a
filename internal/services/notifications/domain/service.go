// Package domain owns the notification outbox: what gets queued for which
// channel, and how queued messages are delivered.
package domain

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/render"
)

var (
	// ErrNotFound indicates an outbox row was not found or is not leased by the caller.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "notification not found")
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = apperrors.New(apperrors.CodeUnknown, "notification store is not configured")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Status is the delivery state of one outbox message.
type Status string

const (
	StatusPending Status = "pending"
	StatusLeased  Status = "leased"
	StatusSent    Status = "sent"
	StatusDead    Status = "dead"
)

// Message is one outbox row: rendered copy bound for one recipient on one channel.
type Message struct {
	ID             string
	Topic          string
	Channel        Channel
	Recipient      string
	Subject        string
	Body           string
	DedupeKey      string
	Status         Status
	AttemptCount   int
	NextAttemptAt  time.Time
	LeaseOwner     string
	LeaseExpiresAt *time.Time
	LastError      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SentAt         *time.Time
}

// Intent asks for one topic to be delivered about one record. Channels
// without a recipient are skipped.
type Intent struct {
	Topic   string
	Ref     string
	Phone   string
	Email   string
	Payload map[string]string
}

// EnqueueResult counts rows created and duplicates ignored.
type EnqueueResult struct {
	Queued     int
	Duplicates int
}

// Store is the outbox persistence used when enqueuing.
type Store interface {
	// InsertMessage stores message unless its dedupe key already exists,
	// reporting whether a row was written.
	InsertMessage(ctx context.Context, message Message) (bool, error)
	ListMessages(ctx context.Context, limit int) ([]Message, error)
}

// Service renders intents into outbox rows.
type Service struct {
	store Store
	loc   render.Localizer
	clock func() time.Time
	newID func() (string, error)
}

// NewService constructs the outbox use-cases.
func NewService(store Store, loc render.Localizer, clock func() time.Time, newID func() (string, error)) *Service {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Service{store: store, loc: loc, clock: clock, newID: newID}
}

// Enqueue stores one message per channel resolved for the intent topic.
// Repeating an intent for the same topic and ref is a no-op.
func (s *Service) Enqueue(ctx context.Context, intent Intent) (EnqueueResult, error) {
	if s == nil || s.store == nil {
		return EnqueueResult{}, ErrStoreNotConfigured
	}
	topic := NormalizeTopic(intent.Topic)
	channels := ResolveChannels(topic)
	if channels == nil {
		return EnqueueResult{}, apperrors.InvalidArgument("topic", "unknown notification topic "+intent.Topic)
	}
	ref := strings.TrimSpace(intent.Ref)
	if ref == "" {
		return EnqueueResult{}, apperrors.InvalidArgument("ref", "notification ref is required")
	}

	now := s.clock().UTC()
	var result EnqueueResult
	for _, channel := range channels {
		recipient := recipientFor(intent, channel)
		if recipient == "" {
			continue
		}
		messageID, err := s.newID()
		if err != nil {
			return result, err
		}
		out := render.Render(s.loc, render.Input{Topic: topic, Channel: channel, Payload: intent.Payload})
		inserted, err := s.store.InsertMessage(ctx, Message{
			ID:            messageID,
			Topic:         topic,
			Channel:       channel,
			Recipient:     recipient,
			Subject:       out.Subject,
			Body:          out.Body,
			DedupeKey:     DedupeKey(topic, ref, channel),
			Status:        StatusPending,
			NextAttemptAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return result, err
		}
		if inserted {
			result.Queued++
		} else {
			result.Duplicates++
		}
	}
	return result, nil
}

// RecentMessages lists outbox rows newest first.
func (s *Service) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	return s.store.ListMessages(ctx, limit)
}

func recipientFor(intent Intent, channel Channel) string {
	switch channel {
	case ChannelSMS:
		return strings.TrimSpace(intent.Phone)
	case ChannelEmail:
		return strings.ToLower(strings.TrimSpace(intent.Email))
	default:
		return ""
	}
}
