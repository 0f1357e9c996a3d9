package service

import (
	"math"
	"testing"
)

func TestResponsibleRawScalesWithCompleteness(t *testing.T) {
	tests := []struct {
		name         string
		completeness float64
		want         float64
	}{
		{"empty report keeps the floor", 0, 40},
		{"full report reaches the ceiling", 1, 100},
		{"half complete lands midway", 0.5, 70},
		{"two thirds complete", 2.0 / 3.0, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResponsibleRaw(tt.completeness)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ResponsibleRaw(%v) = %v, want %v", tt.completeness, got, tt.want)
			}
		})
	}
}

func TestSupportRawIsFlat(t *testing.T) {
	if got := SupportRaw(); got != 80 {
		t.Fatalf("SupportRaw() = %v, want 80", got)
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name       string
		raw        float64
		multiplier float64
		bonus      bool
		want       int
	}{
		{"unit multiplier no bonus", 100, 1.0, false, 100},
		{"unit multiplier with bonus", 100, 1.0, true, 115},
		{"floor with bonus", 40, 1.0, true, 55},
		{"multiplier applied before rounding", 80, 1.25, false, 100},
		{"fractional result rounds to nearest", 46, 1.3, false, 60}, // 59.8 rounds up
		{"support on hard job", 80, 1.5, false, 120}, // flat raw still scales with difficulty
		{"bonus added after multiplication", 80, 1.5, true, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalScore(tt.raw, tt.multiplier, tt.bonus)
			if got != tt.want {
				t.Fatalf("FinalScore(%v, %v, %v) = %d, want %d", tt.raw, tt.multiplier, tt.bonus, got, tt.want)
			}
		})
	}
}

func TestBonusIsWorthTheSameOnEveryJobType(t *testing.T) {
	for _, multiplier := range []float64{0.8, 1.0, 1.3, 2.0} {
		plain := FinalScore(80, multiplier, false)
		boosted := FinalScore(80, multiplier, true)
		if boosted-plain != 15 {
			t.Fatalf("bonus delta at multiplier %v = %d, want 15", multiplier, boosted-plain)
		}
	}
}
