package review

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

const (
	LongSessionMinutes = 480
	BackdatedDays      = 7
	RoundStreakMin     = 5
	lateNightStartHour = 22
	lateNightEndHour   = 5
)

// Entry is the slice of a persisted time entry the detector reads.
type Entry struct {
	ID        string
	Date      string // YYYY-MM-DD
	Minutes   int
	StartedAt *time.Time
	// CreatedAt is zero for drafts that were never saved; now is used instead.
	CreatedAt time.Time
}

// FromTimeEntry adapts a persisted entry.
func FromTimeEntry(e *domain.TimeEntry) Entry {
	return Entry{
		ID:        e.ID,
		Date:      e.Date,
		Minutes:   e.Minutes,
		StartedAt: e.StartedAt,
		CreatedAt: e.CreatedAt,
	}
}

// DetectFlags runs the per-entry checks, then the round-number streak pass
// over the whole timesheet. Start times are read as wall-clock hours in loc
// (nil means UTC). A malformed date is a caller error.
func DetectFlags(entries []Entry, now time.Time, loc *time.Location) ([]domain.EntryFlag, error) {
	if loc == nil {
		loc = time.UTC
	}
	var flags []domain.EntryFlag
	for _, e := range entries {
		perEntry, err := entryFlags(e, now, loc)
		if err != nil {
			return nil, err
		}
		flags = append(flags, perEntry...)
	}
	flags = append(flags, roundNumberFlags(entries)...)
	return flags, nil
}

func entryFlags(e Entry, now time.Time, loc *time.Location) ([]domain.EntryFlag, error) {
	day, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return nil, fmt.Errorf("entry %s: parsing date %q: %w", e.ID, e.Date, err)
	}

	var flags []domain.EntryFlag

	// Noon UTC keeps the weekday stable across zone offsets.
	noon := day.Add(12 * time.Hour)
	if wd := noon.Weekday(); wd == time.Saturday || wd == time.Sunday {
		flags = append(flags, domain.EntryFlag{
			EntryID:  e.ID,
			FlagType: domain.FlagWeekendWork,
			Severity: domain.SeverityInfo,
			Metadata: map[string]any{"weekday": wd.String()},
		})
	}

	if e.StartedAt != nil {
		if h := e.StartedAt.In(loc).Hour(); h >= lateNightStartHour || h < lateNightEndHour {
			flags = append(flags, domain.EntryFlag{
				EntryID:  e.ID,
				FlagType: domain.FlagLateNight,
				Severity: domain.SeverityInfo,
				Metadata: map[string]any{"hour": h},
			})
		}
	}

	if e.Minutes >= LongSessionMinutes {
		flags = append(flags, domain.EntryFlag{
			EntryID:  e.ID,
			FlagType: domain.FlagLongSession,
			Severity: domain.SeverityWarning,
			Metadata: map[string]any{"minutes": e.Minutes, "threshold": LongSessionMinutes},
		})
	}

	created := e.CreatedAt
	if created.IsZero() {
		created = now
	}
	daysLate := int(math.Floor(created.Sub(day).Hours() / 24))
	if daysLate >= BackdatedDays {
		flags = append(flags, domain.EntryFlag{
			EntryID:  e.ID,
			FlagType: domain.FlagBackdated,
			Severity: domain.SeverityWarning,
			Metadata: map[string]any{"days_late": daysLate},
		})
	}

	return flags, nil
}

func isRoundNumber(minutes int) bool {
	return minutes == 60 || minutes == 120
}

// roundNumberFlags folds over entries sorted by (date, createdAt), carrying
// the current run of 60/120-minute entries. The run is flushed on a break
// and once more after the loop for the trailing run.
func roundNumberFlags(entries []Entry) []domain.EntryFlag {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var flags []domain.EntryFlag
	var streak []Entry
	flush := func() {
		if len(streak) >= RoundStreakMin {
			for _, e := range streak {
				flags = append(flags, domain.EntryFlag{
					EntryID:  e.ID,
					FlagType: domain.FlagRoundNumber,
					Severity: domain.SeverityInfo,
					Metadata: map[string]any{"streak_length": len(streak)},
				})
			}
		}
		streak = streak[:0]
	}

	for _, e := range sorted {
		if isRoundNumber(e.Minutes) {
			streak = append(streak, e)
			continue
		}
		flush()
	}
	flush()

	return flags
}
