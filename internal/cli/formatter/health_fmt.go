package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/finance"
	"github.com/alexanderramin/tally/internal/scope"
	"github.com/alexanderramin/tally/internal/service"
)

// FormatHealth renders a project's profitability figures and scope state.
func FormatHealth(h *service.ProjectHealth) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(h.Project.Name), StatusPill(h.Project.Status)))
	b.WriteString(FormatMetrics(h.Metrics))
	b.WriteString("\n")

	expected := domain.Deref(h.Project.Terms.ExpectedHours, 0)
	b.WriteString(fmt.Sprintf("  %-14s %s\n", Dim("Time budget"), RenderBudget(h.Metrics.TotalHours, expected, 20)))
	b.WriteString(fmt.Sprintf("  %-14s %s\n", Dim("Progress"), RenderProgress(h.Project.ProgressPercent, 20)))
	b.WriteString("\n")

	b.WriteString(FormatScope(h))
	return RenderBox("Health", b.String())
}

// FormatMetrics renders the finance figures as a two-column table.
func FormatMetrics(m finance.Metrics) string {
	rows := [][]string{
		{"Gross", MoneyStyled(m.Gross)},
		{"Platform fee", MoneyStyled(-m.PlatformFeeAmount)},
		{"Tax", MoneyStyled(-m.TaxAmount)},
		{"Fixed costs", MoneyStyled(-(m.DirectCost - m.PlatformFeeAmount - m.TaxAmount))},
		{"Net", Bold(FormatMoney(m.Net))},
		{"Hours logged", FormatHours(m.TotalHours)},
		{"Nominal hourly", FormatOptionalMoney(m.NominalHourly)},
		{"Real hourly", FormatOptionalMoney(m.RealHourly)},
	}
	if m.Net < 0 {
		rows[4][1] = StyleRed.Render(FormatMoney(m.Net))
	}
	return Table{Headers: []string{"METRIC", "VALUE"}, Rows: rows, RightAlign: map[int]bool{1: true}}.Render()
}

// FormatScope renders the scope-creep rules that fired, with their figures.
// When the rules no longer fire but an alert is still active, the stored
// alert is shown instead.
func FormatScope(h *service.ProjectHealth) string {
	var b strings.Builder
	b.WriteString(Header("Scope") + "\n")

	res := h.Scope
	if res == nil && h.Alert != nil {
		var meta scope.Metadata
		if err := json.Unmarshal(h.Alert.Metadata, &meta); err == nil {
			res = &scope.Result{Triggered: h.Alert.Triggers, Metadata: meta}
		}
	}
	if res == nil {
		b.WriteString(StyleGreen.Render("No scope creep detected.") + "\n")
		return b.String()
	}

	for _, t := range res.Triggered {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("●"), describeTrigger(t, res.Metadata)))
	}
	if h.Alert != nil {
		status := "Alert active"
		if h.NewAlert {
			status = "New alert raised"
		}
		b.WriteString(Dim(fmt.Sprintf("\n%s (%s). Dismiss with: tally health %s --dismiss\n",
			status, TruncID(h.Alert.ID), h.Project.DisplayID())))
	}
	return b.String()
}

func describeTrigger(t domain.ScopeTrigger, meta scope.Metadata) string {
	switch t {
	case domain.ScopeRule1:
		if m := meta.Rule1; m != nil {
			return fmt.Sprintf("%s of expected time spent (%s of %s) at %d%% progress",
				FormatRate(m.TimeRatio), FormatHours(m.TotalHours), FormatHours(m.ExpectedHours), m.ProgressPercent)
		}
	case domain.ScopeRule2:
		if m := meta.Rule2; m != nil {
			return fmt.Sprintf("Revisions take %s of logged time (%s of %s)",
				FormatRate(m.RevisionRatio), FormatMinutes(m.RevisionMinutes), FormatMinutes(m.TotalMinutes))
		}
	case domain.ScopeRule3:
		if m := meta.Rule3; m != nil {
			return fmt.Sprintf("%d revision entries logged (threshold %d)", m.RevisionCount, m.Threshold)
		}
	case domain.ScopeRule4:
		if m := meta.Rule4; m != nil {
			return fmt.Sprintf("%d revisions exceed the %d agreed", m.RevisionCount, m.AgreedRevisionCount)
		}
	}
	return string(t)
}
