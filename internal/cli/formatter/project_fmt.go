package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "FEE", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.DisplayID()
		if strings.TrimSpace(id) == "" {
			id = "--"
		}
		client := Dim("--")
		if p.ClientName != nil && *p.ClientName != "" {
			client = *p.ClientName
		}
		rows = append(rows, []string{
			StyleDim.Render(id),
			Bold(p.Name),
			client,
			FormatMoney(p.Terms.ExpectedFee),
			RenderProgress(p.ProgressPercent, 10),
			StatusPill(p.Status),
		})
	}

	table := Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{3: true}}.Render()
	return RenderBox("Projects", table)
}

// FormatProjectDetail renders one project's contract terms.
func FormatProjectDetail(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(p.Name), StatusPill(p.Status)))
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", Dim(label), value))
	}

	line("ID", p.ID)
	if len(p.Aliases) > 0 {
		line("Aliases", strings.Join(p.Aliases, ", "))
	}
	if p.ClientName != nil {
		line("Client", *p.ClientName)
	}
	line("Expected fee", FormatMoney(p.Terms.ExpectedFee))
	if p.Terms.ExpectedHours != nil {
		line("Expected hours", FormatHours(domain.Deref(p.Terms.ExpectedHours, 0)))
	} else {
		line("Expected hours", Dim("not set"))
	}
	line("Platform fee", FormatRate(p.Terms.PlatformFeeRate))
	line("Tax rate", FormatRate(p.Terms.TaxRate))
	if p.Terms.AgreedRevisionCount != nil {
		line("Revisions", fmt.Sprintf("%d agreed", domain.Deref(p.Terms.AgreedRevisionCount, 0)))
	} else {
		line("Revisions", Dim("not agreed"))
	}
	line("Progress", RenderProgress(p.ProgressPercent, 20))

	return RenderBox("Project", b.String())
}
