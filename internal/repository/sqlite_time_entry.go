package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
// Every read excludes soft-deleted rows.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

const timeEntryColumns = `id, project_id, date, minutes, category, intent, description,
	started_at, created_at, deleted_at`

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Date,
		e.Minutes,
		string(e.Category),
		string(e.Intent),
		e.Description,
		nullableTimeToString(e.StartedAt, time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(e.DeletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ? AND deleted_at IS NULL`
	e, err := scanTimeEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLiteTimeEntryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.TimeEntry, error) {
	return r.ListRange(ctx, EntryRange{ProjectID: projectID})
}

// ListRange returns entries ordered by (date, created_at).
func (r *SQLiteTimeEntryRepo) ListRange(ctx context.Context, rng EntryRange) ([]*domain.TimeEntry, error) {
	where := []string{"deleted_at IS NULL"}
	var args []any
	if rng.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, rng.ProjectID)
	}
	if rng.From != "" {
		where = append(where, "date >= ?")
		args = append(args, rng.From)
	}
	if rng.To != "" {
		where = append(where, "date <= ?")
		args = append(args, rng.To)
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteTimeEntryRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE time_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return requireAffected(res, "time entry", id)
}

func scanTimeEntry(row scanner) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var category, intent, createdAt string
	var startedAt, deletedAt sql.NullString

	err := row.Scan(
		&e.ID, &e.ProjectID, &e.Date, &e.Minutes, &category, &intent, &e.Description,
		&startedAt, &createdAt, &deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}

	e.Category = domain.Category(category)
	e.Intent = domain.Intent(intent)
	e.StartedAt = parseNullableTime(startedAt, time.RFC3339)
	e.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
