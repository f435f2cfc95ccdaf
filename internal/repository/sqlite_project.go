package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, aliases, client_name, expected_fee, expected_hours,
	platform_fee_rate, tax_rate, agreed_revision_count, progress_percent,
	status, archived_at, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	aliases, err := encodeStrings(p.Aliases)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		aliases,
		nullableStringToValue(p.ClientName),
		p.Terms.ExpectedFee,
		nullableFloatToValue(p.Terms.ExpectedHours),
		p.Terms.PlatformFeeRate,
		p.Terms.TaxRate,
		nullableIntToValue(p.Terms.AgreedRevisionCount),
		p.ProgressPercent,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE archived_at IS NULL ORDER BY created_at`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	}
	return r.queryProjects(ctx, query)
}

// ListActive returns the projects the matcher may resolve against.
func (r *SQLiteProjectRepo) ListActive(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE status = 'active' AND archived_at IS NULL ORDER BY created_at`
	return r.queryProjects(ctx, query)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	aliases, err := encodeStrings(p.Aliases)
	if err != nil {
		return err
	}
	query := `UPDATE projects SET name = ?, aliases = ?, client_name = ?, expected_fee = ?,
		expected_hours = ?, platform_fee_rate = ?, tax_rate = ?, agreed_revision_count = ?,
		progress_percent = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		aliases,
		nullableStringToValue(p.ClientName),
		p.Terms.ExpectedFee,
		nullableFloatToValue(p.Terms.ExpectedHours),
		p.Terms.PlatformFeeRate,
		p.Terms.TaxRate,
		nullableIntToValue(p.Terms.AgreedRevisionCount),
		p.ProgressPercent,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	var aliases, status, createdAt, updatedAt string
	var clientName, archivedAt sql.NullString
	var expectedHours sql.NullFloat64
	var agreedRevisions sql.NullInt64

	err := row.Scan(
		&p.ID, &p.Name, &aliases, &clientName, &p.Terms.ExpectedFee, &expectedHours,
		&p.Terms.PlatformFeeRate, &p.Terms.TaxRate, &agreedRevisions, &p.ProgressPercent,
		&status, &archivedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	if p.Aliases, err = decodeStrings(aliases); err != nil {
		return nil, err
	}
	p.ClientName = nullStringPtr(clientName)
	p.Terms.ExpectedHours = nullFloatPtr(expectedHours)
	p.Terms.AgreedRevisionCount = nullIntPtr(agreedRevisions)
	p.Status = domain.ProjectStatus(status)
	p.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
