package service

import (
	"testing"

	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/repository"
)

func newTestOrdering() *Ordering {
	return NewOrdering(status.NewRegistry(), "yatmarin")
}

func TestIsPriorityLocation(t *testing.T) {
	ordering := newTestOrdering()

	if !ordering.IsPriorityLocation("YATMARIN Marina", "B-12") {
		t.Fatal("expected flagship address to match")
	}
	if !ordering.IsPriorityLocation("Setur Marina", "yatmarin pontoon 3") {
		t.Fatal("expected flagship berth to match")
	}
	if ordering.IsPriorityLocation("Setur Marina", "C-4") {
		t.Fatal("expected non-flagship location not to match")
	}
}

func TestSortFlagshipBeforeEverything(t *testing.T) {
	ordering := newTestOrdering()

	flagship := repository.WorkOrder{Reference: "A", Address: "Yatmarin", Status: status.Completed, ScheduledDate: "20.06.2026"}
	other := repository.WorkOrder{Reference: "B", Address: "Setur Marina", Status: status.InProgress, ScheduledDate: "01.01.2026"}

	sorted := ordering.Sort([]repository.WorkOrder{other, flagship})
	if sorted[0].Reference != "A" {
		t.Fatalf("expected flagship first regardless of status and date, got %q", sorted[0].Reference)
	}
}

func TestSortByStatusPriorityWithinBucket(t *testing.T) {
	ordering := newTestOrdering()

	scheduled := repository.WorkOrder{Reference: "A", Address: "Setur", Status: status.Scheduled, ScheduledDate: "01.01.2026"}
	inProgress := repository.WorkOrder{Reference: "B", Address: "Setur", Status: status.InProgress, ScheduledDate: "31.12.2026"}

	sorted := ordering.Sort([]repository.WorkOrder{scheduled, inProgress})
	if sorted[0].Reference != "B" {
		t.Fatalf("expected in-progress before scheduled regardless of dates, got %q", sorted[0].Reference)
	}
}

func TestSortMissingDateFirst(t *testing.T) {
	ordering := newTestOrdering()

	dated := repository.WorkOrder{Reference: "A", Address: "Setur", Status: status.Scheduled, ScheduledDate: "15.01.2026"}
	undated := repository.WorkOrder{Reference: "B", Address: "Setur", Status: status.Scheduled}
	garbled := repository.WorkOrder{Reference: "C", Address: "Setur", Status: status.Scheduled, ScheduledDate: "sonra aranacak"}

	sorted := ordering.Sort([]repository.WorkOrder{dated, undated, garbled})
	if sorted[2].Reference != "A" {
		t.Fatalf("expected dated order last, got %q", sorted[2].Reference)
	}
}

func TestSortDateAscendingAcceptsBothForms(t *testing.T) {
	ordering := newTestOrdering()

	later := repository.WorkOrder{Reference: "A", Address: "Setur", Status: status.Scheduled, ScheduledDate: "2026-03-01T09:00:00Z"}
	earlier := repository.WorkOrder{Reference: "B", Address: "Setur", Status: status.Scheduled, ScheduledDate: "15.01.2026"}

	sorted := ordering.Sort([]repository.WorkOrder{later, earlier})
	if sorted[0].Reference != "B" {
		t.Fatalf("expected dd.mm.yyyy date to parse and sort earlier, got %q", sorted[0].Reference)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	ordering := newTestOrdering()

	input := []repository.WorkOrder{
		{Reference: "A", Address: "Setur", Status: status.AwaitingParts, ScheduledDate: "10.02.2026"},
		{Reference: "B", Address: "Yatmarin", Status: status.Cancelled},
		{Reference: "C", Address: "Setur", Status: status.InProgress},
		{Reference: "D", Address: "Setur", Status: status.AwaitingParts, ScheduledDate: "10.02.2026"},
	}

	first := ordering.Sort(input)
	second := ordering.Sort(input)
	for i := range first {
		if first[i].Reference != second[i].Reference {
			t.Fatalf("sort not deterministic at %d: %q vs %q", i, first[i].Reference, second[i].Reference)
		}
	}
	if first[0].Reference != "B" {
		t.Fatalf("expected flagship cancelled order first, got %q", first[0].Reference)
	}
}

func TestFilterActiveKeepsOrder(t *testing.T) {
	ordering := newTestOrdering()

	input := []repository.WorkOrder{
		{Reference: "A", Status: status.InProgress},
		{Reference: "B", Status: status.Completed},
		{Reference: "C", Status: status.AwaitingParts},
		{Reference: "D", Status: status.Cancelled},
		{Reference: "E", Status: status.Scheduled},
	}

	active := ordering.FilterActive(input)
	if len(active) != 3 {
		t.Fatalf("expected 3 active orders, got %d", len(active))
	}
	if active[0].Reference != "A" || active[1].Reference != "C" || active[2].Reference != "E" {
		t.Fatalf("filter must preserve order, got %v", []string{active[0].Reference, active[1].Reference, active[2].Reference})
	}
}

func TestParseScheduledDate(t *testing.T) {
	if _, ok := ParseScheduledDate(""); ok {
		t.Fatal("empty date must be missing")
	}
	if _, ok := ParseScheduledDate("15/01/2026"); ok {
		t.Fatal("unsupported format must degrade to missing")
	}
	parsed, ok := ParseScheduledDate("15.01.2026")
	if !ok {
		t.Fatal("expected dd.mm.yyyy to parse")
	}
	if parsed.Day() != 15 || int(parsed.Month()) != 1 || parsed.Year() != 2026 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}
	if _, ok := ParseScheduledDate("2026-03-01T09:00:00Z"); !ok {
		t.Fatal("expected RFC3339 to parse")
	}
}
