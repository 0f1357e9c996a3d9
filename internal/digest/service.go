package digest

import (
	"context"
	"fmt"
	"time"

	"marinaops_backend/platform/config"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// WorkOrderSource supplies active work orders in display order.
// Implemented by an adapter over the workorders module.
type WorkOrderSource interface {
	ActiveOrdered(ctx context.Context, tenantID uuid.UUID) ([]Item, error)
}

// Sender delivers a text message to a phone number.
type Sender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// Service builds and delivers the daily digest.
type Service struct {
	source     WorkOrderSource
	sender     Sender
	recipients []string
	log        *logger.Logger
}

// New creates a digest service. A nil sender disables delivery but keeps
// rendering available for previews.
func New(source WorkOrderSource, sender Sender, cfg config.WhatsAppConfig, log *logger.Logger) *Service {
	return &Service{
		source:     source,
		sender:     sender,
		recipients: cfg.GetDigestRecipients(),
		log:        log,
	}
}

// Preview renders today's digest without sending it.
func (s *Service) Preview(ctx context.Context, tenantID uuid.UUID) (string, error) {
	items, err := s.source.ActiveOrdered(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return Render(time.Now(), items), nil
}

// Send renders today's digest and delivers it to every configured
// recipient. Individual delivery failures are logged and counted but do
// not abort the remaining recipients.
func (s *Service) Send(ctx context.Context, tenantID uuid.UUID) error {
	if s.sender == nil || len(s.recipients) == 0 {
		s.log.Warn("digest delivery skipped, no sender or recipients configured", "tenant", tenantID)
		return nil
	}

	items, err := s.source.ActiveOrdered(ctx, tenantID)
	if err != nil {
		return err
	}
	message := Render(time.Now(), items)

	failed := 0
	for _, recipient := range s.recipients {
		if err := s.sender.SendMessage(ctx, recipient, message); err != nil {
			s.log.Error("digest delivery failed", "tenant", tenantID, "recipient", recipient, "error", err)
			failed++
		}
	}
	if failed == len(s.recipients) {
		return fmt.Errorf("digest delivery failed for all %d recipients", failed)
	}

	s.log.Info("digest delivered", "tenant", tenantID, "workOrders", len(items), "recipients", len(s.recipients)-failed)
	return nil
}
