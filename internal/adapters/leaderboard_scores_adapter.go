package adapters

import (
	"context"
	"time"

	closurerepo "marinaops_backend/internal/closure/repository"
	leaderboard "marinaops_backend/internal/leaderboard/service"

	"github.com/google/uuid"
)

// LeaderboardScoreAdapter adapts the closure repository to the leaderboard
// module's ScoreSource interface.
type LeaderboardScoreAdapter struct {
	repo closurerepo.Repository
}

// NewLeaderboardScoreAdapter creates the adapter.
func NewLeaderboardScoreAdapter(repo closurerepo.Repository) *LeaderboardScoreAdapter {
	return &LeaderboardScoreAdapter{repo: repo}
}

var _ leaderboard.ScoreSource = (*LeaderboardScoreAdapter)(nil)

// ScoresForMonth returns the closure scores computed for work orders
// closed in the given month.
func (a *LeaderboardScoreAdapter) ScoresForMonth(ctx context.Context, tenantID uuid.UUID, year, month int) ([]leaderboard.ScoreInput, error) {
	records, err := a.repo.ListScoresForMonth(ctx, tenantID, year, time.Month(month))
	if err != nil {
		return nil, err
	}

	out := make([]leaderboard.ScoreInput, 0, len(records))
	for _, rec := range records {
		out = append(out, leaderboard.ScoreInput{
			PersonnelID: rec.PersonnelID,
			FinalScore:  rec.FinalScore,
		})
	}
	return out, nil
}
