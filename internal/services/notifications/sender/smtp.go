package sender

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
)

// SMTPConfig addresses one SMTP relay.
type SMTPConfig struct {
	Addr     string
	From     string
	Username string
	Password string
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers email messages through an SMTP relay.
type SMTPSender struct {
	cfg      SMTPConfig
	auth     smtp.Auth
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSender validates cfg and builds a sender. PLAIN auth is used when
// a username is set.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.From = strings.TrimSpace(cfg.From)
	if cfg.Addr == "" {
		return nil, fmt.Errorf("smtp addr is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	host, _, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("parse smtp addr: %w", err)
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return &SMTPSender{cfg: cfg, auth: auth, sendMail: smtp.SendMail, now: time.Now}, nil
}

// Send delivers one email message.
func (s *SMTPSender) Send(ctx context.Context, message domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message.Channel != domain.ChannelEmail {
		return fmt.Errorf("smtp sender cannot deliver %s messages", message.Channel)
	}
	to := strings.TrimSpace(message.Recipient)
	if to == "" || strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid email recipient %q", message.Recipient)
	}
	if err := s.sendMail(s.cfg.Addr, s.auth, s.cfg.From, []string{to}, s.compose(to, message)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) compose(to string, message domain.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", message.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@spice-loop>\r\n", message.ID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
