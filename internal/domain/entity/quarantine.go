package entity

import "time"

// QuarantineRecord holds an extraction attempt that failed validation or
// scored low confidence. Unlike Event, ClusterHash is not unique here —
// a story can be reattempted across cycles and quarantined repeatedly — but
// any existing row for a ClusterHash still gates re-extraction alongside the
// event table.
type QuarantineRecord struct {
	ID            int64
	ClusterHash   string
	RawOutput     string
	ErrorReasons  []string
	PrimaryTitle  string
	PrimaryURL    string
	Sources       []string
	ArticleURLs   []string
	ModelVersion  string
	PromptVersion string
	QuarantinedAt time.Time
}

// Validate checks the minimal fields a quarantine row must carry to be
// useful for later triage.
func (q *QuarantineRecord) Validate() error {
	if q.ClusterHash == "" {
		return &ValidationError{Field: "clusterHash", Message: "clusterHash is required"}
	}
	if len(q.ErrorReasons) == 0 {
		return &ValidationError{Field: "errorReasons", Message: "at least one error reason is required"}
	}
	return nil
}
