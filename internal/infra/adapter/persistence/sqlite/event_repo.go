// Package sqlite provides the SQLite-backed implementation of the Event
// Store: events, quarantine, and unsubscribe tables behind a single
// database/sql handle opened with PRAGMA journal_mode=WAL.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/repository"
)

// EventRepo implements repository.EventRepository using SQLite.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo creates a new SQLite-backed event repository.
func NewEventRepo(db *sql.DB) repository.EventRepository {
	return &EventRepo{db: db}
}

func marshalList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func unmarshalList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// Exists reports whether hash is present in events OR quarantine. This is
// the dedup gate consulted before every extraction attempt.
func (r *EventRepo) Exists(ctx context.Context, hash string) (bool, error) {
	const query = `
SELECT EXISTS(SELECT 1 FROM events WHERE cluster_hash = ?)
OR EXISTS(SELECT 1 FROM quarantine WHERE cluster_hash = ?)
`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, hash, hash).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: QueryRowContext: %w", err)
	}
	return exists, nil
}

// InsertEvent is idempotent by the clusterHash UNIQUE constraint: on
// conflict it does nothing, since an Event is immutable once inserted.
func (r *EventRepo) InsertEvent(ctx context.Context, event *entity.Event) error {
	const query = `
INSERT INTO events
(cluster_hash, summary, country, regions, event_type, event_subtype, severity,
 scope, source_tier, verification_status, confidence, rationale, actors,
 actors_normalized, article_count, sources, article_urls, primary_url,
 primary_title, published_at, extracted_at, model_version, prompt_version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(cluster_hash) DO NOTHING
`
	_, err := r.db.ExecContext(ctx, query,
		event.ClusterHash, event.Summary, event.Country, marshalList(event.Regions),
		string(event.EventType), event.EventSubtype, event.Severity,
		string(event.Scope), string(event.SourceTier), string(event.VerificationStatus),
		event.Confidence, event.Rationale, marshalList(event.Actors),
		marshalList(event.ActorsNormalized), event.ArticleCount, marshalList(event.Sources),
		marshalList(event.ArticleURLs), event.PrimaryURL, event.PrimaryTitle,
		event.PublishedAt, event.ExtractedAt, event.ModelVersion, event.PromptVersion,
	)
	if err != nil {
		return fmt.Errorf("InsertEvent: ExecContext: %w", err)
	}
	return nil
}

const eventColumns = `
id, cluster_hash, summary, country, regions, event_type, event_subtype, severity,
scope, source_tier, verification_status, confidence, rationale, actors,
actors_normalized, article_count, sources, article_urls, primary_url,
primary_title, published_at, extracted_at, model_version, prompt_version
`

func scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*entity.Event, error) {
	var e entity.Event
	var regions, eventType, scope, sourceTier, verification, actors, actorsNorm, sources, articleURLs string

	err := row.Scan(
		&e.ID, &e.ClusterHash, &e.Summary, &e.Country, &regions, &eventType, &e.EventSubtype,
		&e.Severity, &scope, &sourceTier, &verification, &e.Confidence, &e.Rationale,
		&actors, &actorsNorm, &e.ArticleCount, &sources, &articleURLs, &e.PrimaryURL,
		&e.PrimaryTitle, &e.PublishedAt, &e.ExtractedAt, &e.ModelVersion, &e.PromptVersion,
	)
	if err != nil {
		return nil, err
	}

	e.Regions = unmarshalList(regions)
	e.EventType = entity.EventType(eventType)
	e.Scope = entity.Scope(scope)
	e.SourceTier = entity.SourceTier(sourceTier)
	e.VerificationStatus = entity.VerificationStatus(verification)
	e.Actors = unmarshalList(actors)
	e.ActorsNormalized = unmarshalList(actorsNorm)
	e.Sources = unmarshalList(sources)
	e.ArticleURLs = unmarshalList(articleURLs)

	return &e, nil
}

// GetByClusterHash retrieves a single Event for feed enrichment. Returns
// (nil, nil) when no row matches.
func (r *EventRepo) GetByClusterHash(ctx context.Context, hash string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE cluster_hash = ? LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, hash)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByClusterHash: %w", err)
	}
	return event, nil
}

// ListBySeverityWindow returns every Event published in [from, to) with
// severity >= minSeverity, newest first.
func (r *EventRepo) ListBySeverityWindow(ctx context.Context, from, to time.Time, minSeverity int) ([]*entity.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events
WHERE published_at >= ? AND published_at < ? AND severity >= ?
ORDER BY published_at DESC
`
	rows, err := r.db.QueryContext(ctx, query, from, to, minSeverity)
	if err != nil {
		return nil, fmt.Errorf("ListBySeverityWindow: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBySeverityWindow: Scan: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
