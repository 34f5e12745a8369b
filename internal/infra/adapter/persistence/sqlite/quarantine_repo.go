package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/repository"
)

// QuarantineRepo implements repository.QuarantineRepository using SQLite.
type QuarantineRepo struct {
	db *sql.DB
}

// NewQuarantineRepo creates a new SQLite-backed quarantine repository.
func NewQuarantineRepo(db *sql.DB) repository.QuarantineRepository {
	return &QuarantineRepo{db: db}
}

// Insert appends a quarantine row. ClusterHash is intentionally not unique
// here: a story can be reattempted and re-quarantined across cycles.
func (r *QuarantineRepo) Insert(ctx context.Context, record *entity.QuarantineRecord) error {
	const query = `
INSERT INTO quarantine
(cluster_hash, raw_output, error_reasons, primary_title, primary_url, sources,
 article_urls, model_version, prompt_version, quarantined_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := r.db.ExecContext(ctx, query,
		record.ClusterHash, record.RawOutput, marshalList(record.ErrorReasons),
		record.PrimaryTitle, record.PrimaryURL, marshalList(record.Sources),
		marshalList(record.ArticleURLs), record.ModelVersion, record.PromptVersion,
		record.QuarantinedAt,
	)
	if err != nil {
		return fmt.Errorf("Insert: ExecContext: %w", err)
	}
	return nil
}

// RecentCount returns the number of quarantine rows inserted since the
// given time, used by the data-quality snapshot and digest.
func (r *QuarantineRepo) RecentCount(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM quarantine WHERE quarantined_at >= ?`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("RecentCount: QueryRowContext: %w", err)
	}
	return count, nil
}
