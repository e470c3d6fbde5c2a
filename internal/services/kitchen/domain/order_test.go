package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
)

func newOrderingFixture(t *testing.T) (*Ordering, *fakeStore, *fakeNotifier) {
	t.Helper()

	store := newFakeStore()
	store.items["dal"] = MenuItem{ID: "dal", Name: "Tarka dal", Category: CategoryMain, PricePence: 850, Available: true}
	store.items["naan"] = MenuItem{ID: "naan", Name: "Garlic naan", Category: CategorySide, PricePence: 300, Available: true}
	store.items["old"] = MenuItem{ID: "old", Name: "Retired curry", Category: CategoryMain, PricePence: 900, Available: false}
	store.riders["rider-1"] = Rider{ID: "rider-1", Name: "Sam", Phone: "07700900001", Active: true}
	store.riders["rider-2"] = Rider{ID: "rider-2", Name: "Lee", Phone: "07700900002", Active: false}
	notifier := &fakeNotifier{}
	ordering := NewOrdering(OrderingDeps{
		Calendar: utcCalendar,
		Menu:     store,
		Orders:   store,
		Riders:   store,
		Settings: store,
		Notifier: notifier,
		Clock:    fixedClock(sweepNow),
		NewID:    sequentialIDs("order"),
	})
	return ordering, store, notifier
}

func validOrderInput() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName: "Ravi",
		Email:        " Ravi@Example.com ",
		Phone:        "07700900000",
		Address:      "1 High Street",
		DeliveryDate: "2026-10-14",
		DeliveryTime: "19:30",
		Lines: []OrderLineInput{
			{MenuItemID: "dal", Quantity: 2},
			{MenuItemID: "naan", Quantity: 1},
		},
	}
}

func TestPlaceOrderPricesFromMenu(t *testing.T) {
	t.Parallel()

	ordering, store, notifier := newOrderingFixture(t)
	order, err := ordering.PlaceOrder(context.Background(), validOrderInput())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	// 2 x 850 + 300 + default 250 delivery fee.
	if order.TotalPence != 2250 {
		t.Fatalf("total = %d, want 2250", order.TotalPence)
	}
	if order.Status != OrderPending || order.Email != "ravi@example.com" {
		t.Fatalf("order = %+v", order)
	}
	if order.Lines[0].Name != "Tarka dal" || order.Lines[0].UnitPence != 850 {
		t.Fatalf("line = %+v", order.Lines[0])
	}
	at, ok := order.DeliveryAt(utcCalendar)
	if !ok || !at.Equal(time.Date(2026, time.October, 14, 19, 30, 0, 0, time.UTC)) {
		t.Fatalf("delivery at = %s, %v", at, ok)
	}
	if _, ok := store.orders[order.ID]; !ok {
		t.Fatal("order not stored")
	}
	if len(notifier.placed) != 1 {
		t.Fatalf("placed notifications = %d, want 1", len(notifier.placed))
	}
}

func TestPlaceOrderWithoutDelivery(t *testing.T) {
	t.Parallel()

	ordering, _, _ := newOrderingFixture(t)
	input := validOrderInput()
	input.DeliveryDate = ""
	input.DeliveryTime = ""
	order, err := ordering.PlaceOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if _, ok := order.DeliveryAt(utcCalendar); ok {
		t.Fatal("expected unscheduled order")
	}
}

func TestPlaceOrderNotifierFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	ordering, _, notifier := newOrderingFixture(t)
	notifier.err = errBoom
	if _, err := ordering.PlaceOrder(context.Background(), validOrderInput()); err != nil {
		t.Fatalf("place order: %v", err)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*PlaceOrderInput)
		code   apperrors.Code
	}{
		{name: "missing name", mutate: func(in *PlaceOrderInput) { in.CustomerName = " " }, code: apperrors.CodeInvalidArgument},
		{name: "missing phone", mutate: func(in *PlaceOrderInput) { in.Phone = "" }, code: apperrors.CodeInvalidArgument},
		{name: "missing address", mutate: func(in *PlaceOrderInput) { in.Address = "" }, code: apperrors.CodeInvalidArgument},
		{name: "no lines", mutate: func(in *PlaceOrderInput) { in.Lines = nil }, code: apperrors.CodeInvalidArgument},
		{name: "zero quantity", mutate: func(in *PlaceOrderInput) { in.Lines[0].Quantity = 0 }, code: apperrors.CodeInvalidArgument},
		{name: "too many", mutate: func(in *PlaceOrderInput) { in.Lines[0].Quantity = 51 }, code: apperrors.CodeInvalidArgument},
		{name: "unknown item", mutate: func(in *PlaceOrderInput) { in.Lines[0].MenuItemID = "ghost" }, code: apperrors.CodeNotFound},
		{name: "unavailable item", mutate: func(in *PlaceOrderInput) { in.Lines[0].MenuItemID = "old" }, code: apperrors.CodeInvalidArgument},
		{name: "date without time", mutate: func(in *PlaceOrderInput) { in.DeliveryTime = "" }, code: apperrors.CodeInvalidArgument},
		{name: "bad time", mutate: func(in *PlaceOrderInput) { in.DeliveryTime = "7pm" }, code: apperrors.CodeInvalidArgument},
		{name: "delivery in the past", mutate: func(in *PlaceOrderInput) { in.DeliveryTime = "11:00" }, code: apperrors.CodeInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ordering, store, _ := newOrderingFixture(t)
			input := validOrderInput()
			tc.mutate(&input)
			_, err := ordering.PlaceOrder(context.Background(), input)
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %s (%v), want %s", got, err, tc.code)
			}
			if len(store.orders) != 0 {
				t.Fatal("invalid order was stored")
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderInQueue}:          true,
		{OrderPending, OrderCancelled}:        true,
		{OrderInQueue, OrderPreparing}:        true,
		{OrderInQueue, OrderCancelled}:        true,
		{OrderPreparing, OrderOutForDelivery}: true,
		{OrderPreparing, OrderCancelled}:      true,
		{OrderOutForDelivery, OrderDelivered}: true,
	}
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			if got := CanTransition(from, to); got != allowed[[2]OrderStatus{from, to}] {
				t.Fatalf("CanTransition(%s, %s) = %v", from, to, got)
			}
		}
	}
	if !OrderDelivered.Terminal() || !OrderCancelled.Terminal() || OrderPending.Terminal() {
		t.Fatal("unexpected terminal statuses")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	ordering, store, _ := newOrderingFixture(t)
	ctx := context.Background()
	store.orders["order-1"] = Order{ID: "order-1", Status: OrderPending}

	order, err := ordering.UpdateOrderStatus(ctx, "order-1", "in_queue")
	if err != nil || order.Status != OrderInQueue {
		t.Fatalf("update = %+v, %v", order, err)
	}
	if _, err := ordering.UpdateOrderStatus(ctx, "order-1", "delivered"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
	}
	if _, err := ordering.UpdateOrderStatus(ctx, "order-1", "lost"); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("err = %v, want invalid argument", err)
	}
	if _, err := ordering.UpdateOrderStatus(ctx, "ghost", "cancelled"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAssignRider(t *testing.T) {
	t.Parallel()

	ordering, store, _ := newOrderingFixture(t)
	ctx := context.Background()
	store.orders["open"] = Order{ID: "open", Status: OrderPreparing}
	store.orders["done"] = Order{ID: "done", Status: OrderDelivered}

	order, err := ordering.AssignRider(ctx, "open", "rider-1")
	if err != nil || order.RiderID != "rider-1" || store.orders["open"].RiderID != "rider-1" {
		t.Fatalf("assign = %+v, %v", order, err)
	}
	if _, err := ordering.AssignRider(ctx, "open", "rider-2"); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("inactive rider err = %v", err)
	}
	if _, err := ordering.AssignRider(ctx, "done", "rider-1"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("terminal order err = %v", err)
	}
	if _, err := ordering.AssignRider(ctx, "open", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing rider err = %v", err)
	}
}

func TestListOrdersTranslatesFilter(t *testing.T) {
	t.Parallel()

	ordering, store, _ := newOrderingFixture(t)
	ctx := context.Background()

	if _, err := ordering.ListOrders(ctx, `status = "pending" AND rider_id = "rider-1"`, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastQuery.Condition.Clause != "(status = ? AND rider_id = ?)" || store.lastQuery.Limit != defaultOrderListLimit {
		t.Fatalf("query = %+v", store.lastQuery)
	}
	if _, err := ordering.ListOrders(ctx, `password = "x"`, 10); apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("err = %v, want invalid argument", err)
	}
	if _, err := ordering.ListOrders(ctx, "", 1000); err != nil || store.lastQuery.Limit != maxOrderListLimit {
		t.Fatalf("limit = %d, %v", store.lastQuery.Limit, err)
	}
}
