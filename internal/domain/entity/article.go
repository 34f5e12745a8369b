// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Source, Cluster, and Event,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// Article is an ephemeral record produced by a single ingestion cycle. It is
// never persisted on its own; it either feeds a Cluster that survives into an
// Event, or it is discarded at the end of the cycle.
type Article struct {
	ID                string
	Title             string
	Description       string
	URL               string
	Image             string
	PublishedAt       time.Time
	Source            string
	SourceCategory    Category
	SourceReliability Reliability
}

// Validate checks the minimal invariants an Article must satisfy before it
// can enter clustering: a non-empty title and a URL that passes the shared
// SSRF-aware URL checks.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	return nil
}
