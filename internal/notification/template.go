package notification

import (
	"fmt"
	"html/template"
	"strings"

	"marinaops_backend/internal/leaderboard/transport"
)

var leaderboardTemplate = template.Must(template.New("leaderboard").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a2e;">
  <h2>Aylık Performans Sıralaması — {{printf "%02d" .Month}}/{{.Year}}</h2>
  <table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
    <tr style="background: #f0f0f5;">
      <th>Sıra</th><th>Personel</th><th>Rozet</th><th>Bileşik Puan</th><th>Kapanan İş</th>
    </tr>
    {{range .Entries}}
    <tr>
      <td>{{.Rank}}</td>
      <td>{{.PersonnelID}}</td>
      <td>{{.BadgeLabel}}</td>
      <td>{{printf "%.1f" .Composite}}</td>
      <td>{{.JobsClosed}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`))

type leaderboardEmailRow struct {
	Rank        int
	PersonnelID string
	BadgeLabel  string
	Composite   float64
	JobsClosed  int
}

type leaderboardEmailData struct {
	Year    int
	Month   int
	Entries []leaderboardEmailRow
}

func renderLeaderboardEmail(board transport.MonthResponse) (string, error) {
	data := leaderboardEmailData{
		Year:    board.Year,
		Month:   board.Month,
		Entries: make([]leaderboardEmailRow, 0, len(board.Entries)),
	}
	for _, entry := range board.Entries {
		data.Entries = append(data.Entries, leaderboardEmailRow{
			Rank:        entry.Rank,
			PersonnelID: entry.PersonnelID.String(),
			BadgeLabel:  badgeLabel(entry.Badge),
			Composite:   entry.Composite,
			JobsClosed:  entry.JobsClosed,
		})
	}

	var b strings.Builder
	if err := leaderboardTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render leaderboard email: %w", err)
	}
	return b.String(), nil
}

func badgeLabel(badge string) string {
	switch badge {
	case "gold":
		return "🥇 Altın"
	case "silver":
		return "🥈 Gümüş"
	case "bronze":
		return "🥉 Bronz"
	default:
		return "—"
	}
}
