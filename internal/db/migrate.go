package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs every schema statement. Statements are idempotent, so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		aliases               TEXT NOT NULL DEFAULT '[]',
		client_name           TEXT,
		expected_fee          REAL NOT NULL DEFAULT 0 CHECK(expected_fee >= 0),
		expected_hours        REAL CHECK(expected_hours IS NULL OR expected_hours >= 0),
		platform_fee_rate     REAL NOT NULL DEFAULT 0
		                      CHECK(platform_fee_rate >= 0 AND platform_fee_rate <= 1),
		tax_rate              REAL NOT NULL DEFAULT 0
		                      CHECK(tax_rate >= 0 AND tax_rate <= 1),
		agreed_revision_count INTEGER,
		progress_percent      INTEGER NOT NULL DEFAULT 0
		                      CHECK(progress_percent >= 0 AND progress_percent <= 100),
		status                TEXT NOT NULL DEFAULT 'active'
		                      CHECK(status IN ('active','paused','done','archived')),
		archived_at           TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		minutes     INTEGER NOT NULL CHECK(minutes BETWEEN 1 AND 1440),
		category    TEXT NOT NULL
		            CHECK(category IN ('planning','design','development','revision','meeting',
		                               'communication','research','admin','other')),
		intent      TEXT NOT NULL DEFAULT 'done' CHECK(intent IN ('done','planned')),
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		deleted_at  TEXT
	)`,

	`ALTER TABLE time_entries ADD COLUMN started_at TEXT`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(date)`,

	`CREATE TABLE IF NOT EXISTS cost_entries (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		amount     REAL NOT NULL,
		cost_type  TEXT NOT NULL CHECK(cost_type IN ('fixed','platform_fee','tax')),
		memo       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		deleted_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cost_entries_project ON cost_entries(project_id)`,

	`CREATE TABLE IF NOT EXISTS scope_alerts (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		triggers   TEXT NOT NULL,
		metadata   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active','dismissed')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scope_alerts_project ON scope_alerts(project_id, status)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id                   TEXT PRIMARY KEY DEFAULT 'default',
		timezone             TEXT NOT NULL DEFAULT 'UTC',
		preferred_project_id TEXT REFERENCES projects(id) ON DELETE SET NULL
	)`,

	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,
}
