package db

import (
	"database/sql"
)

// MigrateUp applies the event store schema. Migrations are additive only:
// new columns get a default and existing rows stay valid, so schema version
// is implicit in column presence rather than tracked explicitly.
func MigrateUp(database *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    cluster_hash         TEXT NOT NULL UNIQUE,
    summary              TEXT NOT NULL,
    country              TEXT NOT NULL,
    regions              TEXT NOT NULL DEFAULT '[]',
    event_type           TEXT NOT NULL,
    event_subtype        TEXT NOT NULL DEFAULT '',
    severity             INTEGER NOT NULL,
    scope                TEXT NOT NULL,
    source_tier          TEXT NOT NULL,
    verification_status  TEXT NOT NULL,
    confidence           REAL NOT NULL,
    rationale            TEXT NOT NULL DEFAULT '',
    actors               TEXT NOT NULL DEFAULT '[]',
    actors_normalized    TEXT NOT NULL DEFAULT '[]',
    article_count        INTEGER NOT NULL DEFAULT 0,
    sources              TEXT NOT NULL DEFAULT '[]',
    article_urls         TEXT NOT NULL DEFAULT '[]',
    primary_url          TEXT NOT NULL DEFAULT '',
    primary_title        TEXT NOT NULL DEFAULT '',
    published_at         DATETIME NOT NULL,
    extracted_at         DATETIME NOT NULL,
    model_version        TEXT NOT NULL DEFAULT '',
    prompt_version       TEXT NOT NULL DEFAULT ''
)`,
		`CREATE TABLE IF NOT EXISTS quarantine (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    cluster_hash    TEXT NOT NULL,
    raw_output      TEXT NOT NULL DEFAULT '',
    error_reasons   TEXT NOT NULL DEFAULT '[]',
    primary_title   TEXT NOT NULL DEFAULT '',
    primary_url     TEXT NOT NULL DEFAULT '',
    sources         TEXT NOT NULL DEFAULT '[]',
    article_urls    TEXT NOT NULL DEFAULT '[]',
    model_version   TEXT NOT NULL DEFAULT '',
    prompt_version  TEXT NOT NULL DEFAULT '',
    quarantined_at  DATETIME NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS unsubscribes (
    email            TEXT NOT NULL,
    token            TEXT NOT NULL UNIQUE,
    unsubscribed_at  DATETIME NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_country ON events(country)`,
		`CREATE INDEX IF NOT EXISTS idx_events_severity ON events(severity)`,
		`CREATE INDEX IF NOT EXISTS idx_events_published_at ON events(published_at)`,
		`CREATE INDEX IF NOT EXISTS idx_quarantine_cluster_hash ON quarantine(cluster_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_quarantine_quarantined_at ON quarantine(quarantined_at)`,
		`CREATE INDEX IF NOT EXISTS idx_unsubscribes_email ON unsubscribes(email)`,
	}

	for _, stmt := range statements {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
