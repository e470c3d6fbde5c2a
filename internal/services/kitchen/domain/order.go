package domain

import (
	"context"
	"log"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/filter"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

const (
	maxLineQuantity       = 50
	defaultOrderListLimit = 50
	maxOrderListLimit     = 200
)

// OrderStatus is the position of an order in the kitchen workflow.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderInQueue        OrderStatus = "in_queue"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists statuses in workflow order.
var OrderStatuses = []OrderStatus{OrderPending, OrderInQueue, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderInQueue, OrderCancelled},
	OrderInQueue:        {OrderPreparing, OrderCancelled},
	OrderPreparing:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered},
}

// ParseOrderStatus normalizes a status token.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range OrderStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderLine is one priced line of an order. Name and price are copied from
// the menu when the order is placed.
type OrderLine struct {
	MenuItemID string
	Name       string
	UnitPence  int64
	Quantity   int
}

// Subtotal returns the line price.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPence * int64(l.Quantity)
}

// Order is a one-off customer order.
type Order struct {
	ID               string
	UserID           string
	CustomerName     string
	Email            string
	Phone            string
	Address          string
	Lines            []OrderLine
	DeliveryFeePence int64
	TotalPence       int64
	Status           OrderStatus
	DeliveryDate     *Date
	DeliveryTime     *TimeOfDay
	Notes            string
	RiderID          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DeliveryAt returns the scheduled delivery instant when both date and time are set.
func (o Order) DeliveryAt(calendar Calendar) (time.Time, bool) {
	if o.DeliveryDate == nil || o.DeliveryTime == nil {
		return time.Time{}, false
	}
	return calendar.At(*o.DeliveryDate, *o.DeliveryTime), true
}

// OrderLineInput requests a quantity of one menu item.
type OrderLineInput struct {
	MenuItemID string
	Quantity   int
}

// PlaceOrderInput carries a checkout form.
type PlaceOrderInput struct {
	UserID       string
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Notes        string
	DeliveryDate string
	DeliveryTime string
	Lines        []OrderLineInput
}

// OrderQuery selects orders for the back office.
type OrderQuery struct {
	Condition filter.Condition
	Limit     int
}

// OrderFilterFields are the identifiers accepted by ListOrders filters.
var OrderFilterFields = filter.Fields{
	"status":        {Column: "status", Type: filter.FieldString},
	"delivery_date": {Column: "delivery_date", Type: filter.FieldString},
	"rider_id":      {Column: "rider_id", Type: filter.FieldString},
	"customer_name": {Column: "customer_name", Type: filter.FieldString},
}

// OrderStore persists orders. TransitionOrderStatus changes status only
// while the row still holds from and reports whether it did.
type OrderStore interface {
	PutOrder(ctx context.Context, order Order) error
	GetOrder(ctx context.Context, orderID string) (Order, error)
	ListOrders(ctx context.Context, query OrderQuery) ([]Order, error)
	ListScheduledPendingOrders(ctx context.Context) ([]Order, error)
	TransitionOrderStatus(ctx context.Context, orderID string, from OrderStatus, to OrderStatus, now time.Time) (bool, error)
	SetOrderRider(ctx context.Context, orderID string, riderID string, now time.Time) error
}

// MenuItemReader loads menu items by id.
type MenuItemReader interface {
	GetMenuItem(ctx context.Context, itemID string) (MenuItem, error)
}

// Notifier receives customer-facing events.
type Notifier interface {
	OrderPlaced(ctx context.Context, order Order) error
	OrderQueued(ctx context.Context, order Order) error
	RequestSubmitted(ctx context.Context, request ServiceRequest) error
}

// OrderingDeps wires the ordering use-cases.
type OrderingDeps struct {
	Calendar Calendar
	Menu     MenuItemReader
	Orders   OrderStore
	Riders   RiderReader
	Settings SettingsReader
	Notifier Notifier
	Clock    func() time.Time
	NewID    func() (string, error)
}

// Ordering places and tracks one-off orders.
type Ordering struct {
	calendar Calendar
	menu     MenuItemReader
	orders   OrderStore
	riders   RiderReader
	settings SettingsReader
	notifier Notifier
	clock    func() time.Time
	newID    func() (string, error)
}

// NewOrdering constructs ordering use-cases.
func NewOrdering(deps OrderingDeps) *Ordering {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = id.NewID
	}
	return &Ordering{
		calendar: deps.Calendar,
		menu:     deps.Menu,
		orders:   deps.Orders,
		riders:   deps.Riders,
		settings: deps.Settings,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		newID:    deps.NewID,
	}
}

// PlaceOrder prices and stores a pending order.
func (o *Ordering) PlaceOrder(ctx context.Context, input PlaceOrderInput) (Order, error) {
	now := o.clock()
	order := Order{
		UserID:       strings.TrimSpace(input.UserID),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		Notes:        strings.TrimSpace(input.Notes),
		Status:       OrderPending,
	}
	switch {
	case order.CustomerName == "":
		return Order{}, apperrors.InvalidArgument("name", "name is required")
	case order.Phone == "":
		return Order{}, apperrors.InvalidArgument("phone", "phone is required")
	case order.Address == "":
		return Order{}, apperrors.InvalidArgument("address", "address is required")
	case len(input.Lines) == 0:
		return Order{}, apperrors.InvalidArgument("items", "at least one item is required")
	}

	if err := o.applyDelivery(&order, input.DeliveryDate, input.DeliveryTime, now); err != nil {
		return Order{}, err
	}

	var subtotal int64
	for _, line := range input.Lines {
		if line.Quantity < 1 || line.Quantity > maxLineQuantity {
			return Order{}, apperrors.InvalidArgument("quantity", "quantity must be between 1 and 50")
		}
		item, err := o.menu.GetMenuItem(ctx, strings.TrimSpace(line.MenuItemID))
		if err != nil {
			return Order{}, err
		}
		if !item.Available {
			return Order{}, apperrors.InvalidArgument("items", item.Name+" is not available")
		}
		priced := OrderLine{MenuItemID: item.ID, Name: item.Name, UnitPence: item.PricePence, Quantity: line.Quantity}
		order.Lines = append(order.Lines, priced)
		subtotal += priced.Subtotal()
	}

	settings, err := o.settings.GetSettings(ctx)
	if err != nil {
		return Order{}, err
	}
	order.DeliveryFeePence = settings.DeliveryFeePence
	order.TotalPence = subtotal + settings.DeliveryFeePence

	order.ID, err = o.newID()
	if err != nil {
		return Order{}, err
	}
	order.CreatedAt = now.UTC()
	order.UpdatedAt = order.CreatedAt
	if err := o.orders.PutOrder(ctx, order); err != nil {
		return Order{}, err
	}
	if o.notifier != nil {
		if err := o.notifier.OrderPlaced(ctx, order); err != nil {
			log.Printf("notify order placed %s: %v", order.ID, err)
		}
	}
	return order, nil
}

func (o *Ordering) applyDelivery(order *Order, rawDate string, rawTime string, now time.Time) error {
	rawDate = strings.TrimSpace(rawDate)
	rawTime = strings.TrimSpace(rawTime)
	if rawDate == "" && rawTime == "" {
		return nil
	}
	if rawDate == "" || rawTime == "" {
		return apperrors.InvalidArgument("delivery", "delivery date and time must be given together")
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return apperrors.InvalidArgument("delivery_date", "delivery date must be YYYY-MM-DD")
	}
	clock, err := ParseTimeOfDay(rawTime)
	if err != nil {
		return apperrors.InvalidArgument("delivery_time", "delivery time must be HH:MM")
	}
	if !o.calendar.At(date, clock).After(now) {
		return apperrors.InvalidArgument("delivery", "delivery must be in the future")
	}
	order.DeliveryDate = &date
	order.DeliveryTime = &clock
	return nil
}

// GetOrder loads one order.
func (o *Ordering) GetOrder(ctx context.Context, orderID string) (Order, error) {
	return o.orders.GetOrder(ctx, strings.TrimSpace(orderID))
}

// ListOrders lists orders newest first, narrowed by an AIP-160 filter over
// status, delivery_date, rider_id and customer_name.
func (o *Ordering) ListOrders(ctx context.Context, rawFilter string, limit int) ([]Order, error) {
	condition, err := filter.Parse(rawFilter, OrderFilterFields)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "invalid order filter", err)
	}
	switch {
	case limit <= 0:
		limit = defaultOrderListLimit
	case limit > maxOrderListLimit:
		limit = maxOrderListLimit
	}
	return o.orders.ListOrders(ctx, OrderQuery{Condition: condition, Limit: limit})
}

// UpdateOrderStatus moves an order along the workflow.
func (o *Ordering) UpdateOrderStatus(ctx context.Context, orderID string, rawStatus string) (Order, error) {
	next, ok := ParseOrderStatus(rawStatus)
	if !ok {
		return Order{}, apperrors.InvalidArgument("status", "unknown order status")
	}
	order, err := o.orders.GetOrder(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(order.Status, next) {
		return Order{}, ErrInvalidStatusTransition
	}
	now := o.clock().UTC()
	changed, err := o.orders.TransitionOrderStatus(ctx, order.ID, order.Status, next, now)
	if err != nil {
		return Order{}, err
	}
	if !changed {
		return Order{}, ErrConflict
	}
	order.Status = next
	order.UpdatedAt = now
	return order, nil
}

// AssignRider hands an open order to an active rider.
func (o *Ordering) AssignRider(ctx context.Context, orderID string, riderID string) (Order, error) {
	order, err := o.orders.GetOrder(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return Order{}, err
	}
	if order.Status.Terminal() {
		return Order{}, ErrInvalidStatusTransition
	}
	rider, err := o.riders.GetRider(ctx, strings.TrimSpace(riderID))
	if err != nil {
		return Order{}, err
	}
	if !rider.Active {
		return Order{}, apperrors.InvalidArgument("rider", "rider is not active")
	}
	now := o.clock().UTC()
	if err := o.orders.SetOrderRider(ctx, order.ID, rider.ID, now); err != nil {
		return Order{}, err
	}
	order.RiderID = rider.ID
	order.UpdatedAt = now
	return order, nil
}
