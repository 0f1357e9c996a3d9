// Package audit provides the append-only audit trail for work-order
// mutations. Each action kind carries a strongly typed payload instead of
// an open-ended untyped bag, so consumers can rely on the shape of the
// before/after data for that kind.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// Action identifies the kind of change an audit entry records.
type Action string

const (
	ActionStatusChange   Action = "status_change"
	ActionTeamChange     Action = "team_change"
	ActionFieldChange    Action = "field_change"
	ActionScoreRecompute Action = "score_recompute"
)

// StatusChange records a canonical status transition, including the raw
// text that produced it.
type StatusChange struct {
	From    string `json:"from"`
	To      string `json:"to"`
	RawText string `json:"rawText,omitempty"`
}

// TeamMember is one assignment inside a team-change payload.
type TeamMember struct {
	PersonnelID uuid.UUID `json:"personnelId"`
	Role        string    `json:"role"`
	Bonus       bool      `json:"bonus"`
}

// TeamChange records a full assignment-set replacement.
type TeamChange struct {
	Before []TeamMember `json:"before"`
	After  []TeamMember `json:"after"`
}

// FieldChange records a scalar field edit.
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// ScoreRecompute records a closure-score recomputation, preserving the
// superseded final scores per personnel member.
type ScoreRecompute struct {
	Reason   string         `json:"reason,omitempty"`
	Previous map[string]int `json:"previous"`
	Current  map[string]int `json:"current"`
}

// Entry is a persisted audit record.
type Entry struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ActorID     uuid.UUID
	WorkOrderID uuid.UUID
	Action      Action
	Payload     json.RawMessage
	CreatedAt   time.Time
}

// Store persists audit entries. Append-only: there is no update or delete.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]Entry, error)
}

// Recorder writes typed audit entries. A failed append is logged and
// swallowed: the audit trail must never abort the business operation.
type Recorder struct {
	store Store
	log   *logger.Logger
}

// NewRecorder creates an audit recorder.
func NewRecorder(store Store, log *logger.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// StatusChanged appends a status-change entry.
func (r *Recorder) StatusChanged(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, payload StatusChange) {
	r.append(ctx, tenantID, actorID, workOrderID, ActionStatusChange, payload)
}

// TeamChanged appends a team-change entry.
func (r *Recorder) TeamChanged(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, payload TeamChange) {
	r.append(ctx, tenantID, actorID, workOrderID, ActionTeamChange, payload)
}

// FieldChanged appends a field-change entry.
func (r *Recorder) FieldChanged(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, payload FieldChange) {
	r.append(ctx, tenantID, actorID, workOrderID, ActionFieldChange, payload)
}

// ScoresRecomputed appends a score-recompute entry.
func (r *Recorder) ScoresRecomputed(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, payload ScoreRecompute) {
	r.append(ctx, tenantID, actorID, workOrderID, ActionScoreRecompute, payload)
}

func (r *Recorder) append(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, action Action, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Error("audit payload marshal failed", "action", action, "error", err)
		return
	}

	entry := Entry{
		TenantID:    tenantID,
		ActorID:     actorID,
		WorkOrderID: workOrderID,
		Action:      action,
		Payload:     data,
	}
	if err := r.store.Append(ctx, entry); err != nil {
		r.log.Error("audit append failed", "action", action, "work_order", workOrderID, "error", err)
	}
}
