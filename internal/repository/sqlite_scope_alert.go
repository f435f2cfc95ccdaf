package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteScopeAlertRepo implements ScopeAlertRepo using a SQLite database.
type SQLiteScopeAlertRepo struct {
	db db.DBTX
}

// NewSQLiteScopeAlertRepo creates a new SQLiteScopeAlertRepo.
func NewSQLiteScopeAlertRepo(conn db.DBTX) *SQLiteScopeAlertRepo {
	return &SQLiteScopeAlertRepo{db: conn}
}

func (r *SQLiteScopeAlertRepo) Create(ctx context.Context, a *domain.ScopeAlert) error {
	triggers, err := json.Marshal(a.Triggers)
	if err != nil {
		return fmt.Errorf("encoding alert triggers: %w", err)
	}
	metadata := a.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	query := `INSERT INTO scope_alerts (id, project_id, triggers, metadata, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		string(triggers),
		string(metadata),
		string(a.Status),
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting scope alert: %w", err)
	}
	return nil
}

func (r *SQLiteScopeAlertRepo) GetActiveByProject(ctx context.Context, projectID string) (*domain.ScopeAlert, error) {
	query := `SELECT id, project_id, triggers, metadata, status, created_at
		FROM scope_alerts WHERE project_id = ? AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	a, err := scanScopeAlert(r.db.QueryRowContext(ctx, query, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active scope alert for %s: %w", projectID, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteScopeAlertRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ScopeAlert, error) {
	query := `SELECT id, project_id, triggers, metadata, status, created_at
		FROM scope_alerts WHERE project_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing scope alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.ScopeAlert
	for rows.Next() {
		a, err := scanScopeAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scope alerts: %w", err)
	}
	return alerts, nil
}

func (r *SQLiteScopeAlertRepo) Dismiss(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE scope_alerts SET status = 'dismissed' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("dismissing scope alert: %w", err)
	}
	return requireAffected(res, "scope alert", id)
}

func scanScopeAlert(row scanner) (*domain.ScopeAlert, error) {
	var a domain.ScopeAlert
	var triggers, metadata, status, createdAt string

	if err := row.Scan(&a.ID, &a.ProjectID, &triggers, &metadata, &status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning scope alert: %w", err)
	}
	if err := json.Unmarshal([]byte(triggers), &a.Triggers); err != nil {
		return nil, fmt.Errorf("decoding alert triggers: %w", err)
	}
	a.Metadata = []byte(metadata)
	a.Status = domain.AlertStatus(status)

	var err error
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}
