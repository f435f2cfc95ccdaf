package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tally/internal/service"
)

// FormatTimesheet renders a date range of entries with their anomaly flags
// listed under each flagged entry.
func FormatTimesheet(sheet *service.Timesheet, projectNames map[string]string) string {
	title := fmt.Sprintf("Timesheet %s to %s", sheet.From, sheet.To)
	if len(sheet.Entries) == 0 {
		return RenderBox(title, Dim("No entries in range."))
	}

	var b strings.Builder
	for _, e := range sheet.Entries {
		marker := StyleGreen.Render("✔")
		if len(sheet.Flags[e.ID]) > 0 {
			marker = StyleYellow.Render("▲")
		}
		b.WriteString(fmt.Sprintf("%s %s  %-8s %s  %s\n",
			marker, e.Date, FormatMinutes(e.Minutes), projectLabel(e.ProjectID, projectNames), Dim(e.Description)))
		for _, f := range sheet.Flags[e.ID] {
			b.WriteString(fmt.Sprintf("    %s %s%s\n", SeverityBadge(f.Severity), string(f.FlagType), formatFlagMeta(f.Metadata)))
		}
	}

	b.WriteString("\n" + Dim(fmt.Sprintf("%d entries, %s, %d flags",
		len(sheet.Entries), FormatMinutes(sheet.TotalMinutes), sheet.FlagCount)))
	return RenderBox(title, b.String())
}

// formatFlagMeta renders metadata as sorted key=value pairs.
func formatFlagMeta(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return Dim("  " + strings.Join(parts, " "))
}
