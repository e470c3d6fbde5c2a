package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

var dispatchNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func seedMessage(store *fakeStore, id string, channel Channel, attempts int, next time.Time) {
	store.messages[id] = Message{
		ID:            id,
		Topic:         TopicOrderPlaced,
		Channel:       channel,
		Recipient:     "r",
		DedupeKey:     "order.placed:" + id + ":" + string(channel),
		Status:        StatusPending,
		AttemptCount:  attempts,
		NextAttemptAt: next,
	}
	store.order = append(store.order, id)
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 30 * time.Second},
		{attempt: 1, want: 30 * time.Second},
		{attempt: 2, want: time.Minute},
		{attempt: 4, want: 4 * time.Minute},
		{attempt: 7, want: 32 * time.Minute},
		{attempt: 8, want: time.Hour},
		{attempt: 40, want: time.Hour},
	}
	for _, tc := range tests {
		got := RetryDelay(30*time.Second, time.Hour, tc.attempt)
		if got != tc.want {
			t.Fatalf("RetryDelay(attempt %d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestDispatchDueSendsAndMarksSent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedMessage(store, "m1", ChannelSMS, 0, dispatchNow.Add(-time.Minute))
	seedMessage(store, "m2", ChannelEmail, 0, dispatchNow)
	seedMessage(store, "later", ChannelSMS, 0, dispatchNow.Add(time.Minute))
	sms, email := &fakeSender{}, &fakeSender{}
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: sms, ChannelEmail: email}, DispatchConfig{Owner: "w1"})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result != (DispatchResult{Sent: 2}) {
		t.Fatalf("result = %+v, want 2 sent", result)
	}
	if len(sms.sent) != 1 || len(email.sent) != 1 {
		t.Fatalf("sms sent %d email sent %d, want 1 each", len(sms.sent), len(email.sent))
	}
	if store.messages["m1"].Status != StatusSent || store.messages["later"].Status != StatusPending {
		t.Fatalf("statuses = %s/%s", store.messages["m1"].Status, store.messages["later"].Status)
	}
}

func TestDispatchDueReschedulesFailedSend(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedMessage(store, "m1", ChannelSMS, 2, dispatchNow)
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: &fakeSender{err: errBoom}}, DispatchConfig{
		Owner:        "w1",
		MaxAttempts:  8,
		RetryBackoff: 30 * time.Second,
	})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result != (DispatchResult{Retried: 1}) {
		t.Fatalf("result = %+v, want 1 retried", result)
	}
	if len(store.retryCalls) != 1 {
		t.Fatalf("retry calls = %d, want 1", len(store.retryCalls))
	}
	call := store.retryCalls[0]
	if want := dispatchNow.Add(2 * time.Minute); !call.next.Equal(want) {
		t.Fatalf("next attempt = %v, want %v", call.next, want)
	}
	if call.lastError != "boom" {
		t.Fatalf("last error = %q, want boom", call.lastError)
	}
	if got := store.messages["m1"]; got.Status != StatusPending || got.AttemptCount != 3 {
		t.Fatalf("row = %+v, want pending with 3 attempts", got)
	}
}

func TestDispatchDueMarksDeadAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedMessage(store, "m1", ChannelSMS, 7, dispatchNow)
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: &fakeSender{err: errBoom}}, DispatchConfig{Owner: "w1", MaxAttempts: 8})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result != (DispatchResult{Dead: 1}) {
		t.Fatalf("result = %+v, want 1 dead", result)
	}
	if store.messages["m1"].Status != StatusDead {
		t.Fatalf("status = %s, want dead", store.messages["m1"].Status)
	}
}

func TestDispatchDueMarksDeadWithoutSender(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedMessage(store, "m1", ChannelEmail, 0, dispatchNow)
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: &fakeSender{}}, DispatchConfig{Owner: "w1"})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Dead != 1 || store.messages["m1"].LastError != "no sender for channel email" {
		t.Fatalf("result = %+v row = %+v", result, store.messages["m1"])
	}
}

func TestDispatchDueLeaseFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.leaseErr = errBoom
	d := NewDispatcher(store, nil, DispatchConfig{})
	if _, err := d.DispatchDue(context.Background(), dispatchNow); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want lease failure", err)
	}
}

func TestDispatchDueMarkFailureStopsBatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedMessage(store, "m1", ChannelSMS, 0, dispatchNow)
	seedMessage(store, "m2", ChannelSMS, 0, dispatchNow)
	store.markErr = errBoom
	sender := &fakeSender{}
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: sender}, DispatchConfig{Owner: "w1"})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want mark failure", err)
	}
	if result.Sent != 0 || len(sender.sent) != 1 {
		t.Fatalf("result = %+v sent = %d, want stop after first send", result, len(sender.sent))
	}
}

func TestDispatchDueRespectsBatchSize(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	for _, id := range []string{"m1", "m2", "m3"} {
		seedMessage(store, id, ChannelSMS, 0, dispatchNow)
	}
	d := NewDispatcher(store, map[Channel]Sender{ChannelSMS: &fakeSender{}}, DispatchConfig{Owner: "w1", BatchSize: 2})

	result, err := d.DispatchDue(context.Background(), dispatchNow)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Sent != 2 {
		t.Fatalf("sent = %d, want 2", result.Sent)
	}
}
