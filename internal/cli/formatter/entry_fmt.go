package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// FormatEntryList renders saved time entries. projectNames maps project IDs
// to names; unknown IDs fall back to the truncated ID.
func FormatEntryList(entries []*domain.TimeEntry, projectNames map[string]string) string {
	headers := []string{"ID", "DATE", "PROJECT", "TIME", "CATEGORY", "INTENT", "TASK"}
	rows := make([][]string, 0, len(entries))
	total := 0
	for _, e := range entries {
		intent := string(e.Intent)
		if e.Intent == domain.IntentPlanned {
			intent = Dim(intent)
		} else {
			total += e.Minutes
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			e.Date,
			projectLabel(e.ProjectID, projectNames),
			FormatMinutes(e.Minutes),
			CategoryBadge(e.Category),
			intent,
			e.Description,
		})
	}

	var b strings.Builder
	b.WriteString(Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{3: true}}.Render())
	b.WriteString("\n" + Dim(fmt.Sprintf("%d entries, %s done", len(entries), FormatMinutes(total))))
	return RenderBox("Time Entries", b.String())
}

// FormatCostList renders a project's cost entries with their total.
func FormatCostList(costs []*domain.CostEntry) string {
	headers := []string{"ID", "TYPE", "AMOUNT", "MEMO", "ADDED"}
	rows := make([][]string, 0, len(costs))
	var total float64
	for _, c := range costs {
		total += c.Amount
		rows = append(rows, []string{
			TruncID(c.ID),
			string(c.CostType),
			FormatMoney(c.Amount),
			c.Memo,
			Dim(c.CreatedAt.Format("2006-01-02")),
		})
	}

	var b strings.Builder
	b.WriteString(Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{2: true}}.Render())
	b.WriteString("\n" + Dim(fmt.Sprintf("%d costs, total %s", len(costs), FormatMoney(total))))
	return RenderBox("Costs", b.String())
}

func projectLabel(id string, names map[string]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return TruncID(id)
}
