// Package digest renders and delivers the daily WhatsApp summary of
// active work orders, in the operational display order the crew works in.
package digest

import (
	"fmt"
	"strings"
	"time"
)

// Item is one work order line of the digest, already in display order.
type Item struct {
	Reference        string
	Address          string
	Berth            string
	StatusLabel      string
	ScheduledDate    string
	PriorityLocation bool
}

// Render builds the WhatsApp digest text for a day. Items must already be
// in operational display order; rendering never reorders.
func Render(date time.Time, items []Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌊 Günlük Servis Özeti — %s\n", date.Format("02.01.2006"))

	if len(items) == 0 {
		b.WriteString("\nAktif iş emri yok.\n")
		return b.String()
	}

	b.WriteString("\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. ", i+1)
		if item.PriorityLocation {
			b.WriteString("⭐ ")
		}
		fmt.Fprintf(&b, "[%s] %s", item.StatusLabel, item.Address)
		if item.Berth != "" {
			fmt.Fprintf(&b, " %s", item.Berth)
		}
		if item.Reference != "" {
			fmt.Fprintf(&b, " — %s", item.Reference)
		}
		if item.ScheduledDate != "" {
			fmt.Fprintf(&b, " (%s)", item.ScheduledDate)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nToplam %d aktif iş emri\n", len(items))
	return b.String()
}
