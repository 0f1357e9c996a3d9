package digest

import (
	"strings"
	"testing"
	"time"
)

func TestRenderEmptyDay(t *testing.T) {
	got := Render(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), nil)

	if !strings.Contains(got, "29.08.2026") {
		t.Fatalf("digest missing date:\n%s", got)
	}
	if !strings.Contains(got, "Aktif iş emri yok") {
		t.Fatalf("empty digest missing placeholder:\n%s", got)
	}
}

func TestRenderPreservesOrderAndMarksPriority(t *testing.T) {
	items := []Item{
		{
			Reference:        "FT1234",
			Address:          "Yatmarin",
			Berth:            "B-14",
			StatusLabel:      "Devam Ediyor",
			ScheduledDate:    "01.09.2026",
			PriorityLocation: true,
		},
		{
			Address:     "Netsel Marina",
			StatusLabel: "Randevu Verildi",
		},
	}

	got := Render(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), items)

	first := strings.Index(got, "Yatmarin")
	second := strings.Index(got, "Netsel Marina")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("items out of order:\n%s", got)
	}

	lines := strings.Split(got, "\n")
	var flagshipLine string
	for _, line := range lines {
		if strings.Contains(line, "Yatmarin") {
			flagshipLine = line
		}
	}
	if !strings.Contains(flagshipLine, "⭐") {
		t.Fatalf("priority location not marked:\n%s", got)
	}
	if !strings.Contains(flagshipLine, "[Devam Ediyor]") || !strings.Contains(flagshipLine, "B-14") ||
		!strings.Contains(flagshipLine, "FT1234") || !strings.Contains(flagshipLine, "(01.09.2026)") {
		t.Fatalf("flagship line incomplete: %q", flagshipLine)
	}

	if !strings.Contains(got, "Toplam 2 aktif iş emri") {
		t.Fatalf("digest missing total line:\n%s", got)
	}

	for _, line := range lines {
		if strings.Contains(line, "Netsel Marina") && strings.Contains(line, "⭐") {
			t.Fatalf("non-priority line marked as priority: %q", line)
		}
	}
}
