package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteCostEntryRepo implements CostEntryRepo using a SQLite database.
type SQLiteCostEntryRepo struct {
	db db.DBTX
}

// NewSQLiteCostEntryRepo creates a new SQLiteCostEntryRepo.
func NewSQLiteCostEntryRepo(conn db.DBTX) *SQLiteCostEntryRepo {
	return &SQLiteCostEntryRepo{db: conn}
}

func (r *SQLiteCostEntryRepo) Create(ctx context.Context, c *domain.CostEntry) error {
	query := `INSERT INTO cost_entries (id, project_id, amount, cost_type, memo, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.Amount,
		string(c.CostType),
		c.Memo,
		c.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(c.DeletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting cost entry: %w", err)
	}
	return nil
}

func (r *SQLiteCostEntryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CostEntry, error) {
	query := `SELECT id, project_id, amount, cost_type, memo, created_at, deleted_at
		FROM cost_entries WHERE project_id = ? AND deleted_at IS NULL ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing cost entries: %w", err)
	}
	defer rows.Close()

	var costs []*domain.CostEntry
	for rows.Next() {
		var c domain.CostEntry
		var costType, createdAt string
		var deletedAt sql.NullString
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Amount, &costType, &c.Memo, &createdAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("scanning cost entry: %w", err)
		}
		c.CostType = domain.CostType(costType)
		c.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		costs = append(costs, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost entries: %w", err)
	}
	return costs, nil
}

func (r *SQLiteCostEntryRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE cost_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deleting cost entry: %w", err)
	}
	return requireAffected(res, "cost entry", id)
}
