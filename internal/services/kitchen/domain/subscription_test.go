package domain

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
)

func TestSubscribeLifecycle(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["user-1"] = User{ID: "user-1", Name: "Asha", Email: "asha@example.com", Role: RoleCustomer}
	subscriptions := NewSubscriptions(utcCalendar, store, store, fixedClock(wednesdayMorning), sequentialIDs("sub"))
	ctx := context.Background()

	if _, err := subscriptions.ActiveSubscription(ctx, "user-1"); !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("err = %v, want subscription required", err)
	}

	subscription, err := subscriptions.Subscribe(ctx, "user-1", "weekly_5", "")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if subscription.StartsOn.String() != "2026-10-15" || subscription.Status != SubscriptionActive {
		t.Fatalf("subscription = %+v", subscription)
	}
	if store.users["user-1"].Role != RoleSubscriber {
		t.Fatalf("role = %s, want subscriber", store.users["user-1"].Role)
	}
	if _, err := subscriptions.Subscribe(ctx, "user-1", "weekly_3", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("second subscribe err = %v, want conflict", err)
	}

	if err := subscriptions.CancelSubscription(ctx, "user-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if store.users["user-1"].Role != RoleCustomer {
		t.Fatalf("role = %s, want customer", store.users["user-1"].Role)
	}
	if err := subscriptions.CancelSubscription(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel err = %v, want not found", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["admin"] = User{ID: "admin", Role: RoleAdmin}
	subscriptions := NewSubscriptions(utcCalendar, store, store, fixedClock(wednesdayMorning), sequentialIDs("sub"))
	ctx := context.Background()

	if _, err := subscriptions.Subscribe(ctx, "admin", "daily", ""); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("unknown plan err = %v", err)
	}
	if _, err := subscriptions.Subscribe(ctx, "admin", "weekly_3", "2026-10-01"); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("past start err = %v", err)
	}
	if _, err := subscriptions.Subscribe(ctx, "ghost", "weekly_3", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, err := subscriptions.Subscribe(ctx, "admin", "weekly_3", "2026-10-20"); err != nil {
		t.Fatalf("admin subscribe: %v", err)
	}
	if store.users["admin"].Role != RoleAdmin {
		t.Fatal("admin role was replaced")
	}
}
