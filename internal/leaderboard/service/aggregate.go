package service

import (
	"sort"

	"github.com/google/uuid"
)

// Composite weights. Individual work-order scores carry the most weight,
// the supervisor's monthly assessment slightly less, and the foreman's
// 1-5 rating the remainder after scaling onto the same 0-100 axis.
const (
	weightIndividual = 0.40
	weightSupervisor = 0.35
	weightForeman    = 0.25
	foremanScale     = 20.0
)

// Badge names awarded to the top three ranks.
const (
	BadgeGold   = "gold"
	BadgeSilver = "silver"
	BadgeBronze = "bronze"
)

// ScoreInput is one closure score feeding the monthly aggregation.
type ScoreInput struct {
	PersonnelID uuid.UUID
	FinalScore  int
}

// EvaluationInput is one personnel member's monthly human assessment.
type EvaluationInput struct {
	PersonnelID     uuid.UUID
	SupervisorScore float64
	ForemanRating   float64
}

// RankedEntry is one personnel member's aggregated monthly result.
type RankedEntry struct {
	PersonnelID   uuid.UUID
	IndividualAvg float64
	SupervisorAvg float64
	ForemanRating float64
	Composite     float64
	Rank          int
	Badge         string
	JobsClosed    int
}

// Aggregate computes the ranked monthly leaderboard from closure scores
// and evaluations. A person is ranked only when present in both sources:
// at least one closed work order in the month and a recorded evaluation.
// Absence from either source excludes the person from the board for that
// month; it is never treated as a zero assessment. Ties on the composite
// break on personnel ID so repeated runs produce identical rankings.
func Aggregate(scores []ScoreInput, evaluations []EvaluationInput) []RankedEntry {
	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[uuid.UUID]*bucket)
	for _, s := range scores {
		b := buckets[s.PersonnelID]
		if b == nil {
			b = &bucket{}
			buckets[s.PersonnelID] = b
		}
		b.total += float64(s.FinalScore)
		b.count++
	}

	evalFor := make(map[uuid.UUID]EvaluationInput, len(evaluations))
	for _, e := range evaluations {
		evalFor[e.PersonnelID] = e
	}

	entries := make([]RankedEntry, 0, len(buckets))
	for personnelID, b := range buckets {
		e, ok := evalFor[personnelID]
		if !ok {
			continue
		}
		entry := RankedEntry{
			PersonnelID:   personnelID,
			IndividualAvg: b.total / float64(b.count),
			SupervisorAvg: e.SupervisorScore,
			ForemanRating: e.ForemanRating,
			JobsClosed:    b.count,
		}
		entry.Composite = Composite(entry.IndividualAvg, entry.SupervisorAvg, entry.ForemanRating)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Composite != entries[j].Composite {
			return entries[i].Composite > entries[j].Composite
		}
		return entries[i].PersonnelID.String() < entries[j].PersonnelID.String()
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Badge = badgeForRank(i + 1)
	}
	return entries
}

// Composite combines the three assessment axes into one 0-scaled score.
// The foreman rating is on a 1-5 scale and is stretched onto 0-100 before
// weighting so all three components share an axis.
func Composite(individualAvg, supervisorAvg, foremanRating float64) float64 {
	return weightIndividual*individualAvg +
		weightSupervisor*supervisorAvg +
		weightForeman*(foremanRating*foremanScale)
}

// YearInput is one personnel member's published monthly entry feeding the
// yearly rollup.
type YearInput struct {
	PersonnelID uuid.UUID
	Composite   float64
	Badge       string
	JobsClosed  int
}

// YearlyEntry is one personnel member's aggregated yearly result.
type YearlyEntry struct {
	PersonnelID    uuid.UUID
	TotalComposite float64
	MonthsRanked   int
	Gold           int
	Silver         int
	Bronze         int
	JobsClosed     int
	Rank           int
}

// AggregateYear rolls published monthly entries into a yearly standing:
// composites accumulate, badges are counted, and the field is re-ranked
// on the accumulated composite.
func AggregateYear(months []YearInput) []YearlyEntry {
	byPerson := make(map[uuid.UUID]*YearlyEntry)
	for _, m := range months {
		entry := byPerson[m.PersonnelID]
		if entry == nil {
			entry = &YearlyEntry{PersonnelID: m.PersonnelID}
			byPerson[m.PersonnelID] = entry
		}
		entry.TotalComposite += m.Composite
		entry.MonthsRanked++
		entry.JobsClosed += m.JobsClosed
		switch m.Badge {
		case BadgeGold:
			entry.Gold++
		case BadgeSilver:
			entry.Silver++
		case BadgeBronze:
			entry.Bronze++
		}
	}

	entries := make([]YearlyEntry, 0, len(byPerson))
	for _, entry := range byPerson {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalComposite != entries[j].TotalComposite {
			return entries[i].TotalComposite > entries[j].TotalComposite
		}
		return entries[i].PersonnelID.String() < entries[j].PersonnelID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func badgeForRank(rank int) string {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return ""
	}
}
