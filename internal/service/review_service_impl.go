package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/review"
)

// Timesheet is a date range of entries with their anomaly flags.
type Timesheet struct {
	From         string
	To           string
	Entries      []*domain.TimeEntry
	Flags        map[string][]domain.EntryFlag
	FlagCount    int
	TotalMinutes int
}

type reviewService struct {
	entries  repository.TimeEntryRepo
	profiles repository.UserProfileRepo
	clock    TimeContext
	observer UseCaseObserver
}

// NewReviewService reads the profile only for its timezone, which decides
// the wall-clock hour of a stored start time.
func NewReviewService(entries repository.TimeEntryRepo, profiles repository.UserProfileRepo, clock TimeContext, observers ...UseCaseObserver) ReviewService {
	return &reviewService{
		entries:  entries,
		profiles: profiles,
		clock:    clock,
		observer: combineObservers(observers),
	}
}

func (s *reviewService) Timesheet(ctx context.Context, from, to string) (sheet *Timesheet, err error) {
	startedAt := time.Now()
	fields := map[string]any{"from": from, "to": to}
	defer func() {
		if sheet != nil {
			fields["entries"] = len(sheet.Entries)
			fields["flags"] = sheet.FlagCount
		}
		observeUseCase(ctx, s.observer, "timesheet", startedAt, fields, err)
	}()

	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	loc, err := s.clock.location(profile)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListRange(ctx, repository.EntryRange{From: from, To: to})
	if err != nil {
		return nil, err
	}

	inputs := make([]review.Entry, 0, len(entries))
	total := 0
	for _, e := range entries {
		inputs = append(inputs, review.FromTimeEntry(e))
		total += e.Minutes
	}
	flags, err := review.DetectFlags(inputs, s.clock.now(), loc)
	if err != nil {
		return nil, err
	}

	byEntry := make(map[string][]domain.EntryFlag, len(flags))
	for _, f := range flags {
		byEntry[f.EntryID] = append(byEntry[f.EntryID], f)
	}
	return &Timesheet{
		From:         from,
		To:           to,
		Entries:      entries,
		Flags:        byEntry,
		FlagCount:    len(flags),
		TotalMinutes: total,
	}, nil
}

func validateRange(from, to string) error {
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		return fmt.Errorf("invalid from date %q: %w", from, err)
	}
	t, err := time.Parse("2006-01-02", to)
	if err != nil {
		return fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if t.Before(f) {
		return fmt.Errorf("to date %s is before from date %s", to, from)
	}
	return nil
}
