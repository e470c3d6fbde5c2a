// Package sender delivers rendered outbox messages.
package sender

import (
	"context"
	"log"

	"github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
)

// LogSender writes every message to a logger instead of a provider.
type LogSender struct {
	logger *log.Logger
}

// NewLogSender returns a sender that logs to logger, or to the standard
// logger when logger is nil.
func NewLogSender(logger *log.Logger) *LogSender {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs message.
func (s *LogSender) Send(ctx context.Context, message domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message.Subject != "" {
		s.logger.Printf("%s to %s [%s]: %s | %s", message.Channel, message.Recipient, message.Topic, message.Subject, message.Body)
		return nil
	}
	s.logger.Printf("%s to %s [%s]: %s", message.Channel, message.Recipient, message.Topic, message.Body)
	return nil
}
