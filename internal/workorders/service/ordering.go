package service

import (
	"slices"
	"strings"
	"time"

	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/repository"
)

// dateLayouts are the accepted scheduled-date forms: the legacy dd.mm.yyyy
// spreadsheet format and machine-readable timestamps.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	time.RFC3339,
	"2006-01-02",
}

// Ordering produces the operational display order over work orders.
// It is a pure value: sorting the same input twice yields identical output.
type Ordering struct {
	registry *status.Registry
	marker   string
}

// NewOrdering creates an ordering engine. The flagship marker identifies the
// priority site whose work always sorts first (e.g. "yatmarin").
func NewOrdering(registry *status.Registry, flagshipMarker string) *Ordering {
	return &Ordering{
		registry: registry,
		marker:   strings.ToLower(strings.TrimSpace(flagshipMarker)),
	}
}

// IsPriorityLocation reports whether the address plus berth names the
// flagship site. Case-insensitive substring match, nothing more.
func (o *Ordering) IsPriorityLocation(address, berth string) bool {
	if o.marker == "" {
		return false
	}
	combined := strings.ToLower(address + " " + berth)
	return strings.Contains(combined, o.marker)
}

// Sort returns a new slice ordered for operational display:
//  1. flagship-site work before everything else, regardless of status or date
//  2. within a location bucket, by status priority ascending
//  3. within a bucket and priority, by scheduled date ascending; missing or
//     unparsable dates sort first so undated work stays visible
func (o *Ordering) Sort(orders []repository.WorkOrder) []repository.WorkOrder {
	sorted := make([]repository.WorkOrder, len(orders))
	copy(sorted, orders)

	slices.SortStableFunc(sorted, func(a, b repository.WorkOrder) int {
		aPriority, bPriority := o.IsPriorityLocation(a.Address, a.Berth), o.IsPriorityLocation(b.Address, b.Berth)
		if aPriority != bPriority {
			if aPriority {
				return -1
			}
			return 1
		}

		aRank, bRank := o.registry.Priority(a.Status), o.registry.Priority(b.Status)
		if aRank != bRank {
			return aRank - bRank
		}

		return compareScheduledDates(a.ScheduledDate, b.ScheduledDate)
	})

	return sorted
}

// FilterActive returns only the work orders in an Active status.
// Order is preserved; this never re-sorts.
func (o *Ordering) FilterActive(orders []repository.WorkOrder) []repository.WorkOrder {
	out := make([]repository.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		if o.registry.IsActive(wo.Status) {
			out = append(out, wo)
		}
	}
	return out
}

// ParseScheduledDate parses a raw scheduled-date value. The second return
// is false for empty or unparsable input, which is treated as missing
// rather than an error.
func ParseScheduledDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func compareScheduledDates(a, b string) int {
	aTime, aOK := ParseScheduledDate(a)
	bTime, bOK := ParseScheduledDate(b)

	switch {
	case !aOK && !bOK:
		return 0
	case !aOK:
		return -1
	case !bOK:
		return 1
	}

	return aTime.Compare(bTime)
}
