package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFormatTimesheet_FlagsUnderEntries(t *testing.T) {
	sheet := &service.Timesheet{
		From: "2026-02-01",
		To:   "2026-02-08",
		Entries: []*domain.TimeEntry{
			{ID: "e1", ProjectID: "p1", Date: "2026-02-07", Minutes: 540, Description: "marathon"},
			{ID: "e2", ProjectID: "p1", Date: "2026-02-05", Minutes: 30, Description: "email"},
		},
		Flags: map[string][]domain.EntryFlag{
			"e1": {
				{EntryID: "e1", FlagType: domain.FlagWeekendWork, Severity: domain.SeverityInfo},
				{EntryID: "e1", FlagType: domain.FlagLongSession, Severity: domain.SeverityWarning,
					Metadata: map[string]any{"minutes": 540}},
			},
		},
		FlagCount:    2,
		TotalMinutes: 570,
	}

	out := FormatTimesheet(sheet, map[string]string{"p1": "Brand Refresh"})
	assert.Contains(t, out, "weekend_work")
	assert.Contains(t, out, "long_session")
	assert.Contains(t, out, "minutes=540")
	assert.Contains(t, out, "Brand Refresh")
	assert.Contains(t, out, "2 entries, 9h 30m, 2 flags")
}

func TestFormatTimesheet_Empty(t *testing.T) {
	out := FormatTimesheet(&service.Timesheet{From: "2026-02-01", To: "2026-02-01"}, nil)
	assert.Contains(t, out, "No entries in range.")
}

func TestFormatCostList_Total(t *testing.T) {
	out := FormatCostList([]*domain.CostEntry{
		{ID: "c1", Amount: 30_000, CostType: domain.CostFixed, Memo: "fonts", CreatedAt: time.Now()},
		{ID: "c2", Amount: 20_000, CostType: domain.CostFixed, Memo: "stock", CreatedAt: time.Now()},
	})
	assert.Contains(t, out, "2 costs, total 50,000")
	assert.Contains(t, out, "fonts")
}

func TestFormatEntryList_PlannedNotCountedAsDone(t *testing.T) {
	out := FormatEntryList([]*domain.TimeEntry{
		{ID: "e1", ProjectID: "p1", Date: "2026-02-09", Minutes: 60, Intent: domain.IntentDone, Category: domain.CategoryDesign},
		{ID: "e2", ProjectID: "gone", Date: "2026-02-11", Minutes: 120, Intent: domain.IntentPlanned, Category: domain.CategoryMeeting},
	}, map[string]string{"p1": "Brand Refresh"})

	assert.Contains(t, out, "Brand Refresh")
	assert.Contains(t, out, "2 entries, 1h done")
}
