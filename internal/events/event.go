// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"marinaops_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Work Order Domain Events
// =============================================================================

// WorkOrderStatusChanged is published when a work order's canonical status
// changes, whether via normalization of imported text or a manual update.
type WorkOrderStatusChanged struct {
	BaseEvent
	WorkOrderID uuid.UUID `json:"workOrderId"`
	TenantID    uuid.UUID `json:"tenantId"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
	ChangedByID uuid.UUID `json:"changedById"`
}

func (e WorkOrderStatusChanged) EventName() string { return "workorders.status.changed" }

// WorkOrderClosed is published after a closure report has been accepted
// and score records written for every assignee.
type WorkOrderClosed struct {
	BaseEvent
	WorkOrderID uuid.UUID `json:"workOrderId"`
	TenantID    uuid.UUID `json:"tenantId"`
	ClosedByID  uuid.UUID `json:"closedById"`
	JobTypeKey  string    `json:"jobTypeKey"`
	TeamSize    int       `json:"teamSize"`
	ClosedAt    time.Time `json:"closedAt"`
}

func (e WorkOrderClosed) EventName() string { return "workorders.closed" }

// ScoresRecomputed is published when closure scores for a work order are
// recomputed after an input correction. History is preserved in the audit log.
type ScoresRecomputed struct {
	BaseEvent
	WorkOrderID   uuid.UUID `json:"workOrderId"`
	TenantID      uuid.UUID `json:"tenantId"`
	TriggeredByID uuid.UUID `json:"triggeredById"`
}

func (e ScoresRecomputed) EventName() string { return "closure.scores.recomputed" }

// =============================================================================
// Leaderboard Domain Events
// =============================================================================

// LeaderboardPublished is published when a monthly aggregation run completes
// and the ranked entries have been persisted.
type LeaderboardPublished struct {
	BaseEvent
	TenantID uuid.UUID `json:"tenantId"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Ranked   int       `json:"ranked"`
}

func (e LeaderboardPublished) EventName() string { return "leaderboard.published" }

// =============================================================================
// Tenant Domain Events
// =============================================================================

// TenantProvisioned is published when a marina operator tenant is created,
// triggering job-type catalog seeding.
type TenantProvisioned struct {
	BaseEvent
	TenantID uuid.UUID `json:"tenantId"`
}

func (e TenantProvisioned) EventName() string { return "tenants.provisioned" }
