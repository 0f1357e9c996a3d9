// Package notification provides event handlers for outbound notifications.
// It subscribes to domain events and inverts the dependency: the
// leaderboard module publishes its result without knowing about SMTP.
package notification

import (
	"context"
	"fmt"

	"marinaops_backend/internal/email"
	"marinaops_backend/internal/events"
	"marinaops_backend/internal/leaderboard/transport"
	"marinaops_backend/platform/config"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// BoardReader fetches a published leaderboard. Implemented by the
// leaderboard service.
type BoardReader interface {
	GetMonth(ctx context.Context, tenantID uuid.UUID, year, month int) (transport.MonthResponse, error)
}

// Module wires domain events to outbound channels.
type Module struct {
	sender     *email.Sender
	boards     BoardReader
	recipients []string
	log        *logger.Logger
}

// New creates the notification module.
func New(sender *email.Sender, boards BoardReader, cfg config.MailConfig, log *logger.Logger) *Module {
	return &Module{
		sender:     sender,
		boards:     boards,
		recipients: cfg.GetLeaderboardMailRecipients(),
		log:        log,
	}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeaderboardPublished{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeaderboardPublished:
		return m.handleLeaderboardPublished(ctx, e)
	}
	return nil
}

func (m *Module) handleLeaderboardPublished(ctx context.Context, event events.LeaderboardPublished) error {
	if m.sender == nil || len(m.recipients) == 0 {
		m.log.Info("leaderboard mail skipped, not configured", "tenant", event.TenantID)
		return nil
	}

	board, err := m.boards.GetMonth(ctx, event.TenantID, event.Year, event.Month)
	if err != nil {
		return fmt.Errorf("load published leaderboard: %w", err)
	}

	subject := fmt.Sprintf("Aylık Performans Sıralaması — %02d/%d", event.Month, event.Year)
	body, err := renderLeaderboardEmail(board)
	if err != nil {
		return err
	}

	if err := m.sender.SendHTML(ctx, m.recipients, subject, body); err != nil {
		return fmt.Errorf("send leaderboard mail: %w", err)
	}

	m.log.Info("leaderboard mail sent", "tenant", event.TenantID, "year", event.Year, "month", event.Month, "recipients", len(m.recipients))
	return nil
}
