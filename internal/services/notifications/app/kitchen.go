// Package app adapts kitchen events into notification outbox intents.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
)

// Enqueuer accepts notification intents.
type Enqueuer interface {
	Enqueue(ctx context.Context, intent domain.Intent) (domain.EnqueueResult, error)
}

// KitchenNotifier turns kitchen events into outbox intents, honoring the
// channel switches in the restaurant settings.
type KitchenNotifier struct {
	outbox   Enqueuer
	settings kitchen.SettingsReader
	calendar kitchen.Calendar
}

var (
	_ kitchen.Notifier           = (*KitchenNotifier)(nil)
	_ kitchen.TransitionObserver = (*KitchenNotifier)(nil)
)

// NewKitchenNotifier builds the adapter.
func NewKitchenNotifier(outbox Enqueuer, settings kitchen.SettingsReader, calendar kitchen.Calendar) *KitchenNotifier {
	return &KitchenNotifier{outbox: outbox, settings: settings, calendar: calendar}
}

// OrderPlaced confirms a new order by SMS and, when given, email.
func (n *KitchenNotifier) OrderPlaced(ctx context.Context, order kitchen.Order) error {
	settings, err := n.loadSettings(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, fmt.Sprintf("%d x %s  %s", line.Quantity, line.Name, kitchen.FormatPence(line.Subtotal())))
	}
	return n.enqueue(ctx, settings, domain.Intent{
		Topic: domain.TopicOrderPlaced,
		Ref:   order.ID,
		Phone: order.Phone,
		Email: order.Email,
		Payload: map[string]string{
			"restaurant":    settings.RestaurantName,
			"customer_name": order.CustomerName,
			"order_ref":     kitchen.ShortRef(order.ID),
			"items":         strings.Join(lines, "\n"),
			"total":         kitchen.FormatPence(order.TotalPence),
			"delivery":      n.deliveryLabel(order),
		},
	})
}

// OrderQueued tells the customer the kitchen has started on the order.
func (n *KitchenNotifier) OrderQueued(ctx context.Context, order kitchen.Order) error {
	settings, err := n.loadSettings(ctx)
	if err != nil {
		return err
	}
	delivery := ""
	if order.DeliveryTime != nil {
		delivery = order.DeliveryTime.String()
	}
	return n.enqueue(ctx, settings, domain.Intent{
		Topic: domain.TopicOrderInQueue,
		Ref:   order.ID,
		Phone: order.Phone,
		Payload: map[string]string{
			"restaurant": settings.RestaurantName,
			"order_ref":  kitchen.ShortRef(order.ID),
			"delivery":   delivery,
		},
	})
}

// RequestSubmitted emails the restaurant contact address about a new request.
func (n *KitchenNotifier) RequestSubmitted(ctx context.Context, request kitchen.ServiceRequest) error {
	settings, err := n.loadSettings(ctx)
	if err != nil {
		return err
	}
	eventDate := "-"
	if request.EventDate != nil {
		eventDate = request.EventDate.String()
	}
	guests := "-"
	if request.Guests > 0 {
		guests = strconv.Itoa(request.Guests)
	}
	return n.enqueue(ctx, settings, domain.Intent{
		Topic: domain.TopicRequestSubmitted,
		Ref:   request.ID,
		Email: settings.ContactEmail,
		Payload: map[string]string{
			"kind":       strings.ReplaceAll(string(request.Kind), "_", " "),
			"name":       request.Name,
			"phone":      request.Phone,
			"email":      request.Email,
			"event_date": eventDate,
			"guests":     guests,
			"details":    request.Details,
		},
	})
}

func (n *KitchenNotifier) loadSettings(ctx context.Context) (kitchen.Settings, error) {
	if n.settings == nil {
		return kitchen.DefaultSettings(), nil
	}
	settings, err := n.settings.GetSettings(ctx)
	if err != nil {
		return kitchen.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (n *KitchenNotifier) enqueue(ctx context.Context, settings kitchen.Settings, intent domain.Intent) error {
	if !settings.SMSEnabled {
		intent.Phone = ""
	}
	if !settings.EmailEnabled {
		intent.Email = ""
	}
	if intent.Phone == "" && intent.Email == "" {
		return nil
	}
	if _, err := n.outbox.Enqueue(ctx, intent); err != nil {
		return fmt.Errorf("enqueue %s for %s: %w", intent.Topic, intent.Ref, err)
	}
	return nil
}

func (n *KitchenNotifier) deliveryLabel(order kitchen.Order) string {
	at, ok := order.DeliveryAt(n.calendar)
	if !ok {
		return ""
	}
	return at.Format("Mon 2 Jan 15:04")
}
