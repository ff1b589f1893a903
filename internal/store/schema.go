package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the catalog tables. Idempotent so seed can run repeatedly.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		slug             TEXT NOT NULL,
		tags             TEXT[] NOT NULL DEFAULT '{}',
		description      TEXT,
		image            TEXT,
		related_ids      TEXT[] NOT NULL DEFAULT '{}',
		appeared_in      JSONB,
		audience_profile TEXT,
		market_overview  TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS companies_slug_idx ON companies (slug)`,
	`CREATE TABLE IF NOT EXISTS newsletters (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		slug         TEXT NOT NULL,
		description  TEXT,
		tags         TEXT[] NOT NULL DEFAULT '{}',
		traffic_rank INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS newsletters_slug_idx ON newsletters (slug)`,
	`CREATE TABLE IF NOT EXISTS ads (
		id             TEXT PRIMARY KEY,
		company_id     TEXT NOT NULL REFERENCES companies (id),
		company_name   TEXT NOT NULL,
		ad_copy        TEXT NOT NULL,
		date           TIMESTAMPTZ NOT NULL,
		link           TEXT,
		read_more_link TEXT,
		image          TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS ads_date_idx ON ads (date)`,
	`CREATE INDEX IF NOT EXISTS ads_company_idx ON ads (company_id)`,
	`CREATE TABLE IF NOT EXISTS ad_newsletters (
		ad_id         TEXT NOT NULL REFERENCES ads (id),
		newsletter_id TEXT NOT NULL REFERENCES newsletters (id),
		PRIMARY KEY (ad_id, newsletter_id)
	)`,
}

// EnsureSchema creates the catalog tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
