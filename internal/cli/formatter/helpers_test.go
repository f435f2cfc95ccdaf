package formatter

import (
	"math"
	"strings"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.ProjectStatus
		contains string
	}{
		{domain.ProjectActive, "Active"},
		{domain.ProjectPaused, "Paused"},
		{domain.ProjectDone, "Done"},
		{domain.ProjectArchived, "Archived"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusPill(tt.status), tt.contains)
		})
	}
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{1440, "24h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.input))
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{817000, "817,000"},
		{1234567.5, "1,234,567.5"},
		{25531.25, "25,531.25"},
		{0.125, "0.13"},
		{-183000, "-183,000"},
		{math.Inf(1), "--"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.input), "input %v", tt.input)
	}
}

func TestFormatOptionalMoney_Nil(t *testing.T) {
	assert.Contains(t, FormatOptionalMoney(nil), "--")
	assert.Contains(t, FormatOptionalMoney(domain.Ptr(25000.0)), "25,000")
}

func TestFormatHoursAndRate(t *testing.T) {
	assert.Equal(t, "32h", FormatHours(32))
	assert.Equal(t, "1.33h", FormatHours(80.0/60))
	assert.Equal(t, "3.3%", FormatRate(0.033))
	assert.Equal(t, "85%", FormatRate(0.85))
}

func TestIssueBadge_BlockingVersusWarning(t *testing.T) {
	assert.Contains(t, IssueBadge(domain.IssueProjectUnmatched), "✖")
	assert.Contains(t, IssueBadge(domain.IssueDateAmbiguous), "▲")
}

func TestRenderTable_RightAlign(t *testing.T) {
	out := Table{
		Headers:    []string{"NAME", "AMOUNT"},
		Rows:       [][]string{{"a", "1"}, {"b", "1,000"}},
		RightAlign: map[int]bool{1: true},
	}.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "     1"), "got %q", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "1,000"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
