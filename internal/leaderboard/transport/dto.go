package transport

import (
	"time"

	"github.com/google/uuid"
)

// SubmitEvaluationRequest records the monthly human assessments for one
// personnel member. Resubmitting for the same period overwrites.
type SubmitEvaluationRequest struct {
	PersonnelID     uuid.UUID `json:"personnelId" validate:"required"`
	Year            int       `json:"year" validate:"required,min=2000,max=2100"`
	Month           int       `json:"month" validate:"required,min=1,max=12"`
	SupervisorScore float64   `json:"supervisorScore" validate:"min=0,max=100"`
	ForemanRating   float64   `json:"foremanRating" validate:"required,min=1,max=5"`
}

// EvaluationResponse represents a stored evaluation.
type EvaluationResponse struct {
	ID              uuid.UUID `json:"id"`
	PersonnelID     uuid.UUID `json:"personnelId"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	SupervisorScore float64   `json:"supervisorScore"`
	ForemanRating   float64   `json:"foremanRating"`
}

// EntryResponse is one row of a published monthly leaderboard.
type EntryResponse struct {
	PersonnelID   uuid.UUID `json:"personnelId"`
	Rank          int       `json:"rank"`
	Badge         string    `json:"badge,omitempty"`
	Composite     float64   `json:"composite"`
	IndividualAvg float64   `json:"individualAvg"`
	SupervisorAvg float64   `json:"supervisorAvg"`
	ForemanRating float64   `json:"foremanRating"`
	JobsClosed    int       `json:"jobsClosed"`
}

// MonthResponse is a published monthly leaderboard.
type MonthResponse struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	PublishedAt time.Time       `json:"publishedAt"`
	Entries     []EntryResponse `json:"entries"`
}

// YearEntryResponse is one row of the yearly standing.
type YearEntryResponse struct {
	PersonnelID    uuid.UUID `json:"personnelId"`
	Rank           int       `json:"rank"`
	TotalComposite float64   `json:"totalComposite"`
	MonthsRanked   int       `json:"monthsRanked"`
	Gold           int       `json:"gold"`
	Silver         int       `json:"silver"`
	Bronze         int       `json:"bronze"`
	JobsClosed     int       `json:"jobsClosed"`
}

// YearResponse is the rolled-up yearly standing.
type YearResponse struct {
	Year    int                 `json:"year"`
	Entries []YearEntryResponse `json:"entries"`
}

// PublishResponse summarizes an aggregation run.
type PublishResponse struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Ranked int `json:"ranked"`
}
