package domain

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"
)

type fakeStore struct {
	mu       sync.Mutex
	messages map[string]Message
	order    []string

	insertErr error
	leaseErr  error
	markErr   error

	sentCalls  []string
	retryCalls []retryCall
	deadCalls  []string
}

type retryCall struct {
	id        string
	next      time.Time
	lastError string
}

func newFakeStore() *fakeStore {
	return &fakeStore{messages: map[string]Message{}}
}

func (s *fakeStore) InsertMessage(_ context.Context, message Message) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return false, s.insertErr
	}
	for _, existing := range s.messages {
		if existing.DedupeKey == message.DedupeKey {
			return false, nil
		}
	}
	s.messages[message.ID] = message
	s.order = append(s.order, message.ID)
	return true, nil
}

func (s *fakeStore) ListMessages(_ context.Context, limit int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.messages[s.order[i]])
	}
	return out, nil
}

func (s *fakeStore) LeaseDueMessages(_ context.Context, owner string, limit int, leaseTTL time.Duration, now time.Time) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.leaseErr != nil {
		return nil, s.leaseErr
	}
	ids := append([]string(nil), s.order...)
	sort.SliceStable(ids, func(i, j int) bool {
		return s.messages[ids[i]].NextAttemptAt.Before(s.messages[ids[j]].NextAttemptAt)
	})
	var out []Message
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		message := s.messages[id]
		due := message.Status == StatusPending && !message.NextAttemptAt.After(now)
		expired := message.Status == StatusLeased && message.LeaseExpiresAt != nil && !message.LeaseExpiresAt.After(now)
		if !due && !expired {
			continue
		}
		expires := now.Add(leaseTTL)
		message.Status = StatusLeased
		message.LeaseOwner = owner
		message.LeaseExpiresAt = &expires
		s.messages[id] = message
		out = append(out, message)
	}
	return out, nil
}

func (s *fakeStore) leased(id string, owner string) (Message, error) {
	message, ok := s.messages[id]
	if !ok || message.Status != StatusLeased || message.LeaseOwner != owner {
		return Message{}, ErrNotFound
	}
	return message, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id string, owner string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	message, err := s.leased(id, owner)
	if err != nil {
		return err
	}
	message.Status = StatusSent
	message.AttemptCount++
	message.SentAt = &now
	message.LeaseOwner = ""
	message.LeaseExpiresAt = nil
	s.messages[id] = message
	s.sentCalls = append(s.sentCalls, id)
	return nil
}

func (s *fakeStore) MarkRetry(_ context.Context, id string, owner string, next time.Time, lastError string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	message, err := s.leased(id, owner)
	if err != nil {
		return err
	}
	message.Status = StatusPending
	message.AttemptCount++
	message.NextAttemptAt = next
	message.LastError = lastError
	message.LeaseOwner = ""
	message.LeaseExpiresAt = nil
	s.messages[id] = message
	s.retryCalls = append(s.retryCalls, retryCall{id: id, next: next, lastError: lastError})
	return nil
}

func (s *fakeStore) MarkDead(_ context.Context, id string, owner string, lastError string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	message, err := s.leased(id, owner)
	if err != nil {
		return err
	}
	message.Status = StatusDead
	message.AttemptCount++
	message.LastError = lastError
	message.LeaseOwner = ""
	message.LeaseExpiresAt = nil
	s.messages[id] = message
	s.deadCalls = append(s.deadCalls, id)
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, message Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, message)
	return nil
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func sequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return prefix + "-" + strconv.Itoa(n), nil
	}
}

var errBoom = errors.New("boom")
