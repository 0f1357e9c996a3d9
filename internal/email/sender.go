// Package email provides SMTP delivery for operational emails via go-mail.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"marinaops_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers HTML emails over the tenant's SMTP server.
type Sender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSender creates an SMTP sender, or nil when mail is not configured.
func NewSender(cfg config.MailConfig) *Sender {
	if !cfg.IsMailEnabled() {
		return nil
	}
	return &Sender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetMailFromName(),
		fromEmail: cfg.GetMailFromAddress(),
	}
}

// SendHTML delivers one HTML email to each recipient. The first failure
// aborts: SMTP trouble is rarely recipient-specific.
func (s *Sender) SendHTML(ctx context.Context, recipients []string, subject, htmlContent string) error {
	if s == nil {
		return nil
	}

	for _, recipient := range recipients {
		msg := gomail.NewMsg()
		if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
			return fmt.Errorf("smtp from: %w", err)
		}
		if err := msg.To(recipient); err != nil {
			return fmt.Errorf("smtp to: %w", err)
		}
		msg.Subject(subject)
		msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

		client, err := gomail.NewClient(s.host,
			gomail.WithPort(s.port),
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
			gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
			gomail.WithTimeout(15*time.Second),
			gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
				return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
			}),
		)
		if err != nil {
			return fmt.Errorf("smtp client: %w", err)
		}

		if err := client.DialAndSendWithContext(ctx, msg); err != nil {
			return fmt.Errorf("smtp send to %s: %w", recipient, err)
		}
	}
	return nil
}
