package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, timezone, preferred_project_id FROM user_profile WHERE id = 'default'`

	var p domain.UserProfile
	var preferred sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(&p.ID, &p.Timezone, &preferred)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.PreferredProjectID = nullStringPtr(preferred)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profile (id, timezone, preferred_project_id) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		domain.Coalesce(p.ID, "default"),
		domain.Coalesce(p.Timezone, "UTC"),
		nullableStringToValue(p.PreferredProjectID),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
