package domain

import (
	"strings"

	"github.com/wsaeed77/spice-loop/internal/services/notifications/render"
)

// Channel is a delivery channel for one outbox message.
type Channel = render.Channel

const (
	// ChannelSMS delivers to a phone number.
	ChannelSMS = render.ChannelSMS
	// ChannelEmail delivers to an email address.
	ChannelEmail = render.ChannelEmail
)

// Topic names of the notifications the kitchen emits.
const (
	TopicOrderPlaced      = render.TopicOrderPlaced
	TopicOrderInQueue     = render.TopicOrderInQueue
	TopicRequestSubmitted = render.TopicRequestSubmitted
)

// NormalizeTopic normalizes a producer-provided topic token.
func NormalizeTopic(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ResolveChannels returns the channels a topic is delivered on, or nil for
// an unknown topic.
func ResolveChannels(topic string) []Channel {
	switch NormalizeTopic(topic) {
	case TopicOrderPlaced:
		return []Channel{ChannelSMS, ChannelEmail}
	case TopicOrderInQueue:
		return []Channel{ChannelSMS}
	case TopicRequestSubmitted:
		return []Channel{ChannelEmail}
	default:
		return nil
	}
}

// DedupeKey identifies one topic delivery for one referenced record.
func DedupeKey(topic string, ref string, channel Channel) string {
	return NormalizeTopic(topic) + ":" + strings.TrimSpace(ref) + ":" + string(channel)
}
