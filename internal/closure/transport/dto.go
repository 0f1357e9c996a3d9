package transport

import (
	"time"

	"github.com/google/uuid"
)

// CloseWorkOrderRequest is the closure report submitted when a work order
// is finished. Each boolean mirrors one checklist field; which of them are
// mandatory depends on the work order's job type.
type CloseWorkOrderRequest struct {
	UnitIdentification   bool   `json:"unitIdentification"`
	PhotoEvidence        bool   `json:"photoEvidence"`
	LocationConfirmation bool   `json:"locationConfirmation"`
	ConsumablesLogged    bool   `json:"consumablesLogged"`
	LaborHoursLogged     bool   `json:"laborHoursLogged"`
	SubcontractorInfo    bool   `json:"subcontractorInfo"`
	StockMaterialsLogged bool   `json:"stockMaterialsLogged"`
	Note                 string `json:"note" validate:"omitempty,max=2000"`
}

// PersonnelScoreResponse is one member's computed score.
type PersonnelScoreResponse struct {
	PersonnelID uuid.UUID `json:"personnelId"`
	Role        string    `json:"role"`
	Bonus       bool      `json:"bonus"`
	Multiplier  float64   `json:"multiplier"`
	FinalScore  int       `json:"finalScore"`
}

// ClosureResponse is returned after closing or recomputing a work order.
type ClosureResponse struct {
	WorkOrderID  uuid.UUID                `json:"workOrderId"`
	Completeness float64                  `json:"completeness"`
	ClosedAt     time.Time                `json:"closedAt"`
	Scores       []PersonnelScoreResponse `json:"scores"`
}

// ReportResponse exposes the stored closure report.
type ReportResponse struct {
	WorkOrderID uuid.UUID       `json:"workOrderId"`
	Fields      map[string]bool `json:"fields"`
	Note        string          `json:"note,omitempty"`
	ClosedByID  uuid.UUID       `json:"closedById"`
	ClosedAt    time.Time       `json:"closedAt"`
}

// RecomputeBatchRequest asks for score recomputation across work orders.
type RecomputeBatchRequest struct {
	WorkOrderIDs []uuid.UUID `json:"workOrderIds" validate:"required,min=1,max=100"`
}

// RecomputeBatchResponse summarizes a batch recompute run.
type RecomputeBatchResponse struct {
	Recomputed int         `json:"recomputed"`
	Failed     []uuid.UUID `json:"failed,omitempty"`
}
