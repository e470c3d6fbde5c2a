package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
)

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "notifications.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func insert(t *testing.T, store *Store, id string, dedupe string, next time.Time) {
	t.Helper()

	inserted, err := store.InsertMessage(context.Background(), domain.Message{
		ID:            id,
		Topic:         domain.TopicOrderPlaced,
		Channel:       domain.ChannelSMS,
		Recipient:     "07700 900123",
		Body:          "hello",
		DedupeKey:     dedupe,
		NextAttemptAt: next,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	})
	if err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
	if !inserted {
		t.Fatalf("insert %s: expected a new row", id)
	}
}

func TestInsertMessageIgnoresDuplicateDedupeKey(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	insert(t, store, "m1", "order.placed:ord-1:sms", testNow)

	inserted, err := store.InsertMessage(ctx, domain.Message{
		ID:            "m2",
		Topic:         domain.TopicOrderPlaced,
		Channel:       domain.ChannelSMS,
		Recipient:     "07700 900123",
		Body:          "hello again",
		DedupeKey:     "order.placed:ord-1:sms",
		NextAttemptAt: testNow,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	})
	if err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate dedupe key to be ignored")
	}
	if _, err := store.GetMessage(ctx, "m2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get duplicate err = %v, want not found", err)
	}

	message, err := store.GetMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if message.Status != domain.StatusPending || message.Body != "hello" || !message.NextAttemptAt.Equal(testNow) {
		t.Fatalf("message = %+v", message)
	}
	if message.LeaseExpiresAt != nil || message.SentAt != nil {
		t.Fatalf("message = %+v, want no lease and no sent time", message)
	}
}

func TestLeaseDueMessages(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	insert(t, store, "due-early", "k1", testNow.Add(-2*time.Minute))
	insert(t, store, "due-now", "k2", testNow)
	insert(t, store, "future", "k3", testNow.Add(time.Minute))

	leased, err := store.LeaseDueMessages(ctx, "w1", 10, time.Minute, testNow)
	if err != nil {
		t.Fatalf("lease: %v", err)
	}
	if len(leased) != 2 || leased[0].ID != "due-early" || leased[1].ID != "due-now" {
		t.Fatalf("leased = %+v, want due-early then due-now", leased)
	}
	if leased[0].Status != domain.StatusLeased || leased[0].LeaseOwner != "w1" {
		t.Fatalf("leased row = %+v", leased[0])
	}
	if want := testNow.Add(time.Minute); leased[0].LeaseExpiresAt == nil || !leased[0].LeaseExpiresAt.Equal(want) {
		t.Fatalf("lease expires = %v, want %v", leased[0].LeaseExpiresAt, want)
	}

	again, err := store.LeaseDueMessages(ctx, "w2", 10, time.Minute, testNow.Add(30*time.Second))
	if err != nil {
		t.Fatalf("second lease: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second lease = %+v, want nothing while leases hold", again)
	}

	expired, err := store.LeaseDueMessages(ctx, "w2", 1, time.Minute, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("expired lease: %v", err)
	}
	if len(expired) != 1 || expired[0].LeaseOwner != "w2" {
		t.Fatalf("expired lease = %+v, want one row taken over by w2", expired)
	}
}

func TestLeaseDueMessagesValidation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.LeaseDueMessages(ctx, "", 1, time.Minute, testNow); err == nil {
		t.Fatal("expected owner error")
	}
	if _, err := store.LeaseDueMessages(ctx, "w1", 0, time.Minute, testNow); err == nil {
		t.Fatal("expected limit error")
	}
	if _, err := store.LeaseDueMessages(ctx, "w1", 1, 0, testNow); err == nil {
		t.Fatal("expected ttl error")
	}
}

func TestMarkSentRequiresLeaseOwner(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	insert(t, store, "m1", "k1", testNow)
	if _, err := store.LeaseDueMessages(ctx, "w1", 1, time.Minute, testNow); err != nil {
		t.Fatalf("lease: %v", err)
	}

	if err := store.MarkSent(ctx, "m1", "w2", testNow); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign owner err = %v, want not found", err)
	}
	if err := store.MarkSent(ctx, "m1", "w1", testNow.Add(time.Second)); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	message, err := store.GetMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if message.Status != domain.StatusSent || message.AttemptCount != 1 || message.LeaseOwner != "" {
		t.Fatalf("message = %+v", message)
	}
	if message.SentAt == nil || !message.SentAt.Equal(testNow.Add(time.Second)) {
		t.Fatalf("sent at = %v", message.SentAt)
	}
	if err := store.MarkSent(ctx, "m1", "w1", testNow); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second mark err = %v, want not found", err)
	}
}

func TestMarkRetryAndDead(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	insert(t, store, "m1", "k1", testNow)
	if _, err := store.LeaseDueMessages(ctx, "w1", 1, time.Minute, testNow); err != nil {
		t.Fatalf("lease: %v", err)
	}

	next := testNow.Add(30 * time.Second)
	if err := store.MarkRetry(ctx, "m1", "w1", next, "smtp timeout", testNow); err != nil {
		t.Fatalf("mark retry: %v", err)
	}
	message, _ := store.GetMessage(ctx, "m1")
	if message.Status != domain.StatusPending || message.AttemptCount != 1 || message.LastError != "smtp timeout" || !message.NextAttemptAt.Equal(next) {
		t.Fatalf("after retry = %+v", message)
	}

	if leased, _ := store.LeaseDueMessages(ctx, "w1", 1, time.Minute, testNow); len(leased) != 0 {
		t.Fatalf("leased before next attempt: %+v", leased)
	}
	if leased, _ := store.LeaseDueMessages(ctx, "w1", 1, time.Minute, next); len(leased) != 1 {
		t.Fatalf("leased at next attempt = %d rows, want 1", len(leased))
	}
	if err := store.MarkDead(ctx, "m1", "w1", "gave up", next); err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	message, _ = store.GetMessage(ctx, "m1")
	if message.Status != domain.StatusDead || message.AttemptCount != 2 || message.LastError != "gave up" {
		t.Fatalf("after dead = %+v", message)
	}
	if leased, _ := store.LeaseDueMessages(ctx, "w1", 1, time.Minute, next.Add(time.Hour)); len(leased) != 0 {
		t.Fatalf("dead row leased: %+v", leased)
	}
}

func TestListMessagesNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		if _, err := store.InsertMessage(ctx, domain.Message{
			ID:            id,
			Topic:         domain.TopicOrderInQueue,
			Channel:       domain.ChannelSMS,
			Recipient:     "1",
			Body:          "queued",
			DedupeKey:     "order.in_queue:" + id + ":sms",
			NextAttemptAt: testNow,
			CreatedAt:     testNow.Add(time.Duration(i) * time.Second),
			UpdatedAt:     testNow,
		}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	messages, err := store.ListMessages(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 2 || messages[0].ID != "c" || messages[1].ID != "b" {
		t.Fatalf("messages = %+v, want c then b", messages)
	}
}
