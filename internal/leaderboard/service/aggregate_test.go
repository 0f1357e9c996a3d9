package service

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestCompositeWeights(t *testing.T) {
	// All axes at their maximum must produce exactly 100: the weights sum
	// to 1.0 and the foreman rating scales onto the same axis.
	got := Composite(100, 100, 5)
	if math.Abs(got-100) > 1e-9 {
		t.Fatalf("Composite(100, 100, 5) = %v, want 100", got)
	}

	tests := []struct {
		name          string
		individual    float64
		supervisor    float64
		foreman       float64
		want          float64
	}{
		{"individual only", 80, 0, 0, 32},
		{"supervisor only", 0, 80, 0, 28},
		{"foreman only", 0, 0, 4, 20},
		{"mixed", 90, 70, 3, 75.5}, // 36 + 24.5 + 15
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Composite(tt.individual, tt.supervisor, tt.foreman)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Composite(%v, %v, %v) = %v, want %v", tt.individual, tt.supervisor, tt.foreman, got, tt.want)
			}
		})
	}
}

func TestAggregateRanksAndBadges(t *testing.T) {
	people := make([]uuid.UUID, 5)
	for i := range people {
		people[i] = uuid.New()
	}

	scores := []ScoreInput{
		{PersonnelID: people[0], FinalScore: 100},
		{PersonnelID: people[0], FinalScore: 90},
		{PersonnelID: people[1], FinalScore: 80},
		{PersonnelID: people[2], FinalScore: 70},
		{PersonnelID: people[3], FinalScore: 60},
		{PersonnelID: people[4], FinalScore: 50},
	}
	evaluations := []EvaluationInput{
		{PersonnelID: people[0], SupervisorScore: 95, ForemanRating: 5},
		{PersonnelID: people[1], SupervisorScore: 85, ForemanRating: 4},
		{PersonnelID: people[2], SupervisorScore: 75, ForemanRating: 3},
		{PersonnelID: people[3], SupervisorScore: 65, ForemanRating: 2},
		{PersonnelID: people[4], SupervisorScore: 55, ForemanRating: 1},
	}

	entries := Aggregate(scores, evaluations)
	if len(entries) != 5 {
		t.Fatalf("ranked %d people, want 5", len(entries))
	}

	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, entry.Rank)
		}
		if i > 0 && entries[i-1].Composite < entry.Composite {
			t.Fatalf("entries not sorted by composite desc at index %d", i)
		}
	}

	if entries[0].PersonnelID != people[0] || entries[0].Badge != BadgeGold {
		t.Fatalf("rank 1 = %v badge %q, want %v gold", entries[0].PersonnelID, entries[0].Badge, people[0])
	}
	if entries[1].Badge != BadgeSilver || entries[2].Badge != BadgeBronze {
		t.Fatalf("ranks 2-3 badges = %q, %q, want silver, bronze", entries[1].Badge, entries[2].Badge)
	}
	for _, entry := range entries[3:] {
		if entry.Badge != "" {
			t.Fatalf("rank %d unexpectedly has badge %q", entry.Rank, entry.Badge)
		}
	}

	// Two closed orders for the leader: individual average, not sum.
	if math.Abs(entries[0].IndividualAvg-95) > 1e-9 {
		t.Fatalf("leader individual avg = %v, want 95", entries[0].IndividualAvg)
	}
	if entries[0].JobsClosed != 2 {
		t.Fatalf("leader jobs closed = %d, want 2", entries[0].JobsClosed)
	}
}

func TestAggregateExcludesPersonnelWithoutClosedWork(t *testing.T) {
	active := uuid.New()
	absent := uuid.New()

	entries := Aggregate(
		[]ScoreInput{{PersonnelID: active, FinalScore: 90}},
		[]EvaluationInput{
			{PersonnelID: active, SupervisorScore: 80, ForemanRating: 4},
			{PersonnelID: absent, SupervisorScore: 100, ForemanRating: 5},
		},
	)

	if len(entries) != 1 {
		t.Fatalf("ranked %d people, want 1", len(entries))
	}
	if entries[0].PersonnelID != active {
		t.Fatal("absent member was ranked despite having no closed work")
	}
}

func TestAggregateExcludesPersonnelWithoutEvaluation(t *testing.T) {
	evaluated := uuid.New()
	unevaluated := uuid.New()

	// A closure score alone must not place someone on the board: without
	// an evaluation the supervisor and foreman axes are unknown, not zero.
	entries := Aggregate(
		[]ScoreInput{
			{PersonnelID: evaluated, FinalScore: 90},
			{PersonnelID: unevaluated, FinalScore: 100},
		},
		[]EvaluationInput{
			{PersonnelID: evaluated, SupervisorScore: 80, ForemanRating: 4},
		},
	)

	if len(entries) != 1 {
		t.Fatalf("ranked %d people, want 1", len(entries))
	}
	if entries[0].PersonnelID != evaluated {
		t.Fatal("unevaluated member was ranked despite missing assessment data")
	}

	if got := Aggregate([]ScoreInput{{PersonnelID: unevaluated, FinalScore: 100}}, nil); len(got) != 0 {
		t.Fatalf("month without evaluations ranked %d people, want empty board", len(got))
	}
}

func TestAggregateTieBreaksOnPersonnelID(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	// Identical inputs, deterministic order regardless of input order.
	entries := Aggregate(
		[]ScoreInput{
			{PersonnelID: b, FinalScore: 90},
			{PersonnelID: a, FinalScore: 90},
		},
		[]EvaluationInput{
			{PersonnelID: b, SupervisorScore: 70, ForemanRating: 3},
			{PersonnelID: a, SupervisorScore: 70, ForemanRating: 3},
		},
	)

	if len(entries) != 2 {
		t.Fatalf("ranked %d people, want 2", len(entries))
	}

	if entries[0].PersonnelID != a || entries[1].PersonnelID != b {
		t.Fatalf("tie order = %v, %v; want %v, %v", entries[0].PersonnelID, entries[1].PersonnelID, a, b)
	}
}

func TestAggregateYear(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	months := []YearInput{
		{PersonnelID: a, Composite: 90, Badge: BadgeGold, JobsClosed: 4},
		{PersonnelID: a, Composite: 85, Badge: BadgeSilver, JobsClosed: 3},
		{PersonnelID: b, Composite: 95, Badge: BadgeGold, JobsClosed: 5},
	}

	entries := AggregateYear(months)
	if len(entries) != 2 {
		t.Fatalf("yearly entries = %d, want 2", len(entries))
	}

	// a: 175 total beats b: 95 even though b holds a better single month.
	if entries[0].PersonnelID != a || entries[0].Rank != 1 {
		t.Fatalf("yearly rank 1 = %v, want %v", entries[0].PersonnelID, a)
	}
	if entries[0].Gold != 1 || entries[0].Silver != 1 || entries[0].Bronze != 0 {
		t.Fatalf("badge counts = %d/%d/%d, want 1/1/0", entries[0].Gold, entries[0].Silver, entries[0].Bronze)
	}
	if entries[0].MonthsRanked != 2 || entries[0].JobsClosed != 7 {
		t.Fatalf("months=%d jobs=%d, want 2 and 7", entries[0].MonthsRanked, entries[0].JobsClosed)
	}
}
