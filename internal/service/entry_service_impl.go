package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/alexanderramin/tally/internal/intelligence"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/google/uuid"
)

// Draft is a normalized batch awaiting the user's confirmation. Projects is
// the matcher's view at normalization time, kept for interactive fixes.
type Draft struct {
	Entries      []domain.NormalizedEntry
	Summary      domain.ParseSummary
	ProgressHint *domain.ProgressHint
	Projects     []domain.ProjectForMatching
	Timezone     string
}

// Savable reports whether SaveDraft would accept the draft: no entry has a
// blocking issue left and every entry passes intake.CanSaveAll. A defaulted
// value stays blocking until the user confirms or replaces it.
func (d *Draft) Savable() bool {
	return d.Blocking() == 0 && intake.CanSaveAll(d.Entries)
}

// Blocking counts entries that still need the user. It reads the issues
// themselves, not only the NeedsUserAction flag, so a stale flag cannot
// let an entry through.
func (d *Draft) Blocking() int {
	n := 0
	for i := range d.Entries {
		e := &d.Entries[i]
		if e.NeedsUserAction || domain.HasBlocking(e.Issues) {
			n++
		}
	}
	return n
}

// Warnings counts entries whose only issues are warnings.
func (d *Draft) Warnings() int {
	n := 0
	for i := range d.Entries {
		e := &d.Entries[i]
		if len(e.Issues) > 0 && !e.NeedsUserAction && !domain.HasBlocking(e.Issues) {
			n++
		}
	}
	return n
}

// Resummarize recomputes Summary after entries were edited.
func (d *Draft) Resummarize() {
	d.Summary = intake.Summarize(d.Entries)
}

type entryService struct {
	projects repository.ProjectRepo
	entries  repository.TimeEntryRepo
	profiles repository.UserProfileRepo
	uow      db.UnitOfWork
	parser   intelligence.EntryParser
	clock    TimeContext
	observer UseCaseObserver
}

// NewEntryService wires the intake pipeline. parser may be nil, in which case
// ParseText returns ErrLLMDisabled.
func NewEntryService(
	projects repository.ProjectRepo,
	entries repository.TimeEntryRepo,
	profiles repository.UserProfileRepo,
	uow db.UnitOfWork,
	parser intelligence.EntryParser,
	clock TimeContext,
	observers ...UseCaseObserver,
) EntryService {
	return &entryService{
		projects: projects,
		entries:  entries,
		profiles: profiles,
		uow:      uow,
		parser:   parser,
		clock:    clock,
		observer: combineObservers(observers),
	}
}

// intakeContext is everything normalization reads from storage.
type intakeContext struct {
	opts     intake.NormalizeOptions
	timezone string
}

func (s *entryService) loadIntakeContext(ctx context.Context) (*intakeContext, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	loc, err := s.clock.location(profile)
	if err != nil {
		return nil, err
	}
	active, err := s.projects.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	return &intakeContext{
		opts: intake.NormalizeOptions{
			Projects:           forMatching(active),
			PreferredProjectID: profile.PreferredProjectID,
			Location:           loc,
			Now:                s.clock.now(),
		},
		timezone: loc.String(),
	}, nil
}

func (s *entryService) ParseText(ctx context.Context, text string) (draft *Draft, err error) {
	startedAt := time.Now()
	fields := map[string]any{"chars": len([]rune(text))}
	defer func() {
		if draft != nil {
			fields["entries"] = draft.Summary.Total
			fields["blocking"] = draft.Summary.Blocking
		}
		observeUseCase(ctx, s.observer, "parse-text", startedAt, fields, err)
	}()

	if s.parser == nil {
		return nil, ErrLLMDisabled
	}
	ic, err := s.loadIntakeContext(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ic.opts.Projects))
	for _, p := range ic.opts.Projects {
		names = append(names, p.Name)
	}
	payload, err := s.parser.Parse(ctx, text, intelligence.ParseContext{
		Today:        intake.Today(ic.opts.Now, ic.opts.Location),
		Timezone:     ic.timezone,
		ProjectNames: names,
	})
	if err != nil {
		return nil, err
	}
	return s.normalize(payload, ic), nil
}

func (s *entryService) Normalize(ctx context.Context, payload *intelligence.Payload) (*Draft, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload is required")
	}
	ic, err := s.loadIntakeContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalize(payload, ic), nil
}

func (s *entryService) normalize(payload *intelligence.Payload, ic *intakeContext) *Draft {
	batch := intake.NormalizeBatch(payload.Entries, payload.ProgressHint, ic.opts)
	return &Draft{
		Entries:      batch.Entries,
		Summary:      batch.Summary,
		ProgressHint: batch.ProgressHint,
		Projects:     ic.opts.Projects,
		Timezone:     ic.timezone,
	}
}

func (s *entryService) SaveDraft(ctx context.Context, draft *Draft) (saved []*domain.TimeEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["saved"] = len(saved)
		observeUseCase(ctx, s.observer, "save-draft", startedAt, fields, err)
	}()

	if draft == nil {
		return nil, ErrBatchNotSavable
	}
	if n := draft.Blocking(); n > 0 {
		fields["blocking"] = n
		return nil, fmt.Errorf("%w: %d entries need attention", ErrBatchNotSavable, n)
	}
	if !intake.CanSaveAll(draft.Entries) {
		return nil, ErrBatchNotSavable
	}
	loc, err := intake.LoadTimezone(draft.Timezone)
	if err != nil {
		return nil, err
	}

	now := s.clock.now().UTC().Truncate(time.Second)
	batch := make([]*domain.TimeEntry, 0, len(draft.Entries))
	for _, e := range draft.Entries {
		batch = append(batch, &domain.TimeEntry{
			ID:          uuid.New().String(),
			ProjectID:   *e.MatchedProjectID,
			Date:        e.Date,
			Minutes:     *e.DurationMinutes,
			Category:    e.Category,
			Intent:      e.Intent,
			Description: strings.TrimSpace(e.TaskDescription),
			StartedAt:   intake.StartedAt(e.Date, e.StartTime, loc),
			CreatedAt:   now,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		for _, te := range batch {
			if err := txEntries.Create(ctx, te); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *entryService) List(ctx context.Context, rng repository.EntryRange) ([]*domain.TimeEntry, error) {
	return s.entries.ListRange(ctx, rng)
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	return s.entries.SoftDelete(ctx, id)
}
