package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so Migrate runs
// on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id           TEXT PRIMARY KEY,
		created_at   TEXT NOT NULL,
		city         TEXT NOT NULL,
		area_m2      REAL NOT NULL CHECK(area_m2 > 0),
		scenario     TEXT NOT NULL DEFAULT 'mid'
		             CHECK(scenario IN ('low','mid','high')),
		net_price    REAL NOT NULL,
		total_price  REAL NOT NULL,
		confidence   REAL NOT NULL,
		trust        REAL NOT NULL,
		body         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quotes_created ON quotes(created_at)`,

	`CREATE TABLE IF NOT EXISTS feedback_history (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		quote_id   TEXT NOT NULL,
		accepted   INTEGER NOT NULL CHECK(accepted IN (0, 1)),
		ts         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_feedback_quote ON feedback_history(quote_id)`,

	`CREATE TABLE IF NOT EXISTS productivity (
		city        TEXT NOT NULL,
		task        TEXT NOT NULL,
		multiplier  REAL NOT NULL DEFAULT 1.0
		            CHECK(multiplier >= 0.85 AND multiplier <= 1.15),
		samples     INTEGER NOT NULL DEFAULT 0,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (city, task)
	)`,

	// Realized hours are kept for audit next to the smoothed multiplier.
	`ALTER TABLE productivity ADD COLUMN last_ratio REAL NOT NULL DEFAULT 1.0`,
}
