package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hornwatch/internal/repository"
)

// CountByType returns event counts grouped by eventType for the window,
// used by the digest's topline section.
func (r *EventRepo) CountByType(ctx context.Context, from, to time.Time) ([]repository.TypeCount, error) {
	return r.countByColumn(ctx, "event_type", from, to)
}

// CountBySeverity returns event counts grouped by severity for the window.
func (r *EventRepo) CountBySeverity(ctx context.Context, from, to time.Time) ([]repository.TypeCount, error) {
	return r.countByColumn(ctx, "severity", from, to)
}

// CountByCountry returns event counts grouped by country for the window.
func (r *EventRepo) CountByCountry(ctx context.Context, from, to time.Time) ([]repository.TypeCount, error) {
	return r.countByColumn(ctx, "country", from, to)
}

func (r *EventRepo) countByColumn(ctx context.Context, column string, from, to time.Time) ([]repository.TypeCount, error) {
	query := fmt.Sprintf(`
SELECT %s, COUNT(*)
FROM events
WHERE published_at >= ? AND published_at < ?
GROUP BY %s
ORDER BY COUNT(*) DESC
`, column, column)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("countByColumn(%s): QueryContext: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var result []repository.TypeCount
	for rows.Next() {
		var tc repository.TypeCount
		if err := rows.Scan(&tc.Key, &tc.Count); err != nil {
			return nil, fmt.Errorf("countByColumn(%s): Scan: %w", column, err)
		}
		result = append(result, tc)
	}
	return result, rows.Err()
}

// RegionSeverityWindow sums severity per region across a window by exploding
// the JSON-encoded regions array per event. SQLite has no native JSON array
// explode short of json_each (available via the json1 extension bundled in
// mattn/go-sqlite3's default build), used here rather than doing the
// aggregation in Go so the weighting stays a single query.
func (r *EventRepo) RegionSeverityWindow(ctx context.Context, from, to time.Time) ([]repository.RegionSeverity, error) {
	const query = `
SELECT je.value AS region, SUM(e.severity) AS weighted, COUNT(*) AS event_count
FROM events e, json_each(e.regions) je
WHERE e.published_at >= ? AND e.published_at < ?
GROUP BY je.value
ORDER BY weighted DESC
`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("RegionSeverityWindow: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []repository.RegionSeverity
	for rows.Next() {
		var rs repository.RegionSeverity
		if err := rows.Scan(&rs.Region, &rs.WeightedSeverity, &rs.EventCount); err != nil {
			return nil, fmt.Errorf("RegionSeverityWindow: Scan: %w", err)
		}
		result = append(result, rs)
	}
	return result, rows.Err()
}

// ActorCountsWindow counts event occurrences per normalized actor across a
// window, used by the digest's actor-spikes section.
func (r *EventRepo) ActorCountsWindow(ctx context.Context, from, to time.Time) ([]repository.ActorCount, error) {
	const query = `
SELECT je.value AS actor, COUNT(*) AS cnt
FROM events e, json_each(e.actors_normalized) je
WHERE e.published_at >= ? AND e.published_at < ?
GROUP BY je.value
ORDER BY cnt DESC
`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("ActorCountsWindow: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []repository.ActorCount
	for rows.Next() {
		var ac repository.ActorCount
		if err := rows.Scan(&ac.Actor, &ac.Count); err != nil {
			return nil, fmt.Errorf("ActorCountsWindow: Scan: %w", err)
		}
		result = append(result, ac)
	}
	return result, rows.Err()
}

// DataQuality reports extraction health since a cutoff: the accept rate
// between events and quarantine, average confidence, per-source missing
// regions, and recent quarantine volume.
func (r *EventRepo) DataQuality(ctx context.Context, since time.Time) (*repository.DataQualitySnapshot, error) {
	snapshot := &repository.DataQualitySnapshot{
		MissingRegionsBySource: make(map[string]int),
	}

	var eventCount, quarantineCount int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE extracted_at >= ?`, since,
	).Scan(&eventCount); err != nil {
		return nil, fmt.Errorf("DataQuality: event count: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quarantine WHERE quarantined_at >= ?`, since,
	).Scan(&quarantineCount); err != nil {
		return nil, fmt.Errorf("DataQuality: quarantine count: %w", err)
	}

	total := eventCount + quarantineCount
	if total > 0 {
		snapshot.AcceptRate = float64(eventCount) / float64(total)
	}
	snapshot.RecentQuarantineCount = int(quarantineCount)

	var avgConfidence sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		`SELECT AVG(confidence) FROM events WHERE extracted_at >= ?`, since,
	).Scan(&avgConfidence); err != nil {
		return nil, fmt.Errorf("DataQuality: avg confidence: %w", err)
	}
	if avgConfidence.Valid {
		snapshot.AverageConfidence = avgConfidence.Float64
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT je.value AS source, COUNT(*) AS cnt
FROM events e, json_each(e.sources) je
WHERE e.extracted_at >= ? AND (e.regions = '[]' OR e.regions = '')
GROUP BY je.value
`, since)
	if err != nil {
		return nil, fmt.Errorf("DataQuality: missing regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var source string
		var cnt int
		if err := rows.Scan(&source, &cnt); err != nil {
			return nil, fmt.Errorf("DataQuality: missing regions scan: %w", err)
		}
		snapshot.MissingRegionsBySource[source] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
