package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

// Plan is a weekly meal plan.
type Plan string

const (
	PlanWeekly5 Plan = "weekly_5"
	PlanWeekly3 Plan = "weekly_3"
)

// Plans lists plans in display order.
var Plans = []Plan{PlanWeekly5, PlanWeekly3}

// ParsePlan normalizes a plan token.
func ParsePlan(raw string) (Plan, bool) {
	plan := Plan(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Plans {
		if plan == known {
			return plan, true
		}
	}
	return "", false
}

// SubscriptionStatus is active or cancelled.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a weekly meal plan held by one user.
type Subscription struct {
	ID        string
	UserID    string
	Plan      Plan
	Status    SubscriptionStatus
	StartsOn  Date
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionStore persists subscriptions. At most one row per user is active.
type SubscriptionStore interface {
	PutSubscription(ctx context.Context, subscription Subscription) error
	GetActiveSubscription(ctx context.Context, userID string) (Subscription, error)
	CancelActiveSubscription(ctx context.Context, userID string, now time.Time) (bool, error)
}

// Subscriptions manages meal plans.
type Subscriptions struct {
	calendar      Calendar
	users         UserStore
	subscriptions SubscriptionStore
	clock         func() time.Time
	newID         func() (string, error)
}

// NewSubscriptions constructs subscription use-cases.
func NewSubscriptions(calendar Calendar, users UserStore, subscriptions SubscriptionStore, clock func() time.Time, newID func() (string, error)) *Subscriptions {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Subscriptions{calendar: calendar, users: users, subscriptions: subscriptions, clock: clock, newID: newID}
}

// Subscribe starts a plan for userID. An empty startsOn means tomorrow.
func (s *Subscriptions) Subscribe(ctx context.Context, userID string, rawPlan string, startsOn string) (Subscription, error) {
	plan, ok := ParsePlan(rawPlan)
	if !ok {
		return Subscription{}, apperrors.InvalidArgument("plan", "unknown plan")
	}
	now := s.clock()
	start := s.calendar.Tomorrow(now)
	if strings.TrimSpace(startsOn) != "" {
		parsed, err := ParseDate(startsOn)
		if err != nil {
			return Subscription{}, apperrors.InvalidArgument("starts_on", "start date must be YYYY-MM-DD")
		}
		if parsed.Before(s.calendar.Today(now)) {
			return Subscription{}, apperrors.InvalidArgument("starts_on", "start date cannot be in the past")
		}
		start = parsed
	}
	user, err := s.users.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return Subscription{}, err
	}
	if _, err := s.subscriptions.GetActiveSubscription(ctx, user.ID); err == nil {
		return Subscription{}, apperrors.New(apperrors.CodeConflict, "subscription already active")
	} else if !isNotFound(err) {
		return Subscription{}, err
	}

	subscriptionID, err := s.newID()
	if err != nil {
		return Subscription{}, err
	}
	subscription := Subscription{
		ID:        subscriptionID,
		UserID:    user.ID,
		Plan:      plan,
		Status:    SubscriptionActive,
		StartsOn:  start,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := s.subscriptions.PutSubscription(ctx, subscription); err != nil {
		if errors.Is(err, ErrConflict) {
			return Subscription{}, apperrors.Wrap(apperrors.CodeConflict, "subscription already active", err)
		}
		return Subscription{}, err
	}
	if user.Role == RoleCustomer {
		if err := s.users.SetUserRole(ctx, user.ID, RoleSubscriber); err != nil {
			return Subscription{}, err
		}
	}
	return subscription, nil
}

// CancelSubscription ends userID's active plan.
func (s *Subscriptions) CancelSubscription(ctx context.Context, userID string) error {
	user, err := s.users.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	cancelled, err := s.subscriptions.CancelActiveSubscription(ctx, user.ID, s.clock().UTC())
	if err != nil {
		return err
	}
	if !cancelled {
		return notFound("active subscription", nil)
	}
	if user.Role == RoleSubscriber {
		return s.users.SetUserRole(ctx, user.ID, RoleCustomer)
	}
	return nil
}

// ActiveSubscription returns userID's active plan, or ErrSubscriptionRequired.
func (s *Subscriptions) ActiveSubscription(ctx context.Context, userID string) (Subscription, error) {
	subscription, err := s.subscriptions.GetActiveSubscription(ctx, strings.TrimSpace(userID))
	if err != nil {
		if isNotFound(err) {
			return Subscription{}, ErrSubscriptionRequired
		}
		return Subscription{}, err
	}
	return subscription, nil
}
