// Package render turns notification topics into channel-specific copy.
package render

import (
	"strings"

	"golang.org/x/text/message"
)

const (
	// TopicOrderPlaced confirms a new order to the customer.
	TopicOrderPlaced = "order.placed"
	// TopicOrderInQueue tells the customer the kitchen has queued the order.
	TopicOrderInQueue = "order.in_queue"
	// TopicRequestSubmitted alerts the restaurant about a catering or special order request.
	TopicRequestSubmitted = "request.submitted"

	defaultGenericSubject = "Spice Loop update"
	defaultGenericBody    = "There is an update to your Spice Loop order."
	defaultASAP           = "as soon as possible"
)

// Channel identifies where one rendered message is delivered.
type Channel string

const (
	// ChannelSMS renders short plain text for a phone.
	ChannelSMS Channel = "sms"
	// ChannelEmail renders a subject and body.
	ChannelEmail Channel = "email"
)

// Input is one channel render request.
type Input struct {
	Topic   string
	Channel Channel
	Payload map[string]string
}

// Output is localized copy for one channel. Subject is empty for SMS.
type Output struct {
	Subject string
	Body    string
}

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Render returns localized copy for one notification.
func Render(loc Localizer, input Input) Output {
	p := input.Payload
	switch normalizeToken(input.Topic) {
	case TopicOrderPlaced:
		restaurant := p["restaurant"]
		delivery := p["delivery"]
		if delivery == "" {
			delivery = localizeWithFallback(loc, "notification.delivery.asap", defaultASAP)
		}
		if input.Channel == ChannelSMS {
			return Output{Body: localize(loc, "notification.order_placed.sms", restaurant, p["customer_name"], p["order_ref"], p["total"], delivery)}
		}
		return Output{
			Subject: localize(loc, "notification.order_placed.email_subject", restaurant, p["order_ref"]),
			Body:    localize(loc, "notification.order_placed.email_body", p["customer_name"], p["order_ref"], p["items"], p["total"], delivery, restaurant),
		}
	case TopicOrderInQueue:
		out := Output{Body: localize(loc, "notification.order_in_queue.sms", p["restaurant"], p["order_ref"], p["delivery"])}
		if input.Channel == ChannelEmail {
			out.Subject = localize(loc, "notification.order_in_queue.email_subject", p["order_ref"])
		}
		return out
	case TopicRequestSubmitted:
		return Output{
			Subject: localize(loc, "notification.request_submitted.email_subject", p["kind"], p["name"]),
			Body:    localize(loc, "notification.request_submitted.email_body", p["name"], p["phone"], p["email"], p["kind"], p["event_date"], p["guests"], p["details"]),
		}
	default:
		return genericOutput(loc, input.Channel)
	}
}

func genericOutput(loc Localizer, channel Channel) Output {
	out := Output{Body: localizeWithFallback(loc, "notification.generic.body", defaultGenericBody)}
	if channel == ChannelEmail {
		out.Subject = localizeWithFallback(loc, "notification.generic.subject", defaultGenericSubject)
	}
	return out
}

func localize(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if asString, ok := key.(string); ok {
			return asString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}

func localizeWithFallback(loc Localizer, key string, fallback string) string {
	value := strings.TrimSpace(localize(loc, key))
	if value == "" || value == key {
		return fallback
	}
	return value
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
