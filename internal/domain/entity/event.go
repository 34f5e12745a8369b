package entity

import (
	"fmt"
	"time"
)

// EventType classifies the nature of an Event.
type EventType string

const (
	EventTypeSecurity       EventType = "security"
	EventTypePolitical      EventType = "political"
	EventTypeEconomic       EventType = "economic"
	EventTypeHumanitarian   EventType = "humanitarian"
	EventTypeInfrastructure EventType = "infrastructure"
	EventTypeLegal          EventType = "legal"
)

// Scope classifies the geographic reach of an Event.
type Scope string

const (
	ScopeLocal       Scope = "local"
	ScopeState       Scope = "state"
	ScopeNational    Scope = "national"
	ScopeCrossBorder Scope = "cross_border"
)

// SourceTier classifies the reliability tier backing an extracted Event,
// derived from the reliability of the cluster's contributing sources.
type SourceTier string

const (
	SourceTierOne   SourceTier = "tier1"
	SourceTierTwo   SourceTier = "tier2"
	SourceTierThree SourceTier = "tier3"
)

// VerificationStatus reflects how corroborated an Event is at extraction
// time.
type VerificationStatus string

const (
	VerificationConfirmed  VerificationStatus = "confirmed"
	VerificationReported   VerificationStatus = "reported"
	VerificationUnverified VerificationStatus = "unverified"
)

// Event is the persistent, append-only record produced by the Extractor for
// a Cluster that passed validation. It is keyed by ClusterHash, which is
// unique and immutable once inserted: nothing mutates an Event after
// insertion, and a ClusterHash already present in the event or quarantine
// table gates re-extraction.
type Event struct {
	ID                 int64
	ClusterHash        string
	Summary            string
	Country            string
	Regions            []string
	EventType          EventType
	EventSubtype       string
	Severity           int
	Scope              Scope
	SourceTier         SourceTier
	VerificationStatus VerificationStatus
	Confidence         float64
	Rationale          string
	Actors             []string
	ActorsNormalized   []string
	ArticleCount       int
	Sources            []string
	ArticleURLs        []string
	PrimaryURL         string
	PrimaryTitle       string
	PublishedAt        time.Time
	ExtractedAt        time.Time
	ModelVersion       string
	PromptVersion      string
}

// ClampSeverity forces Severity into the valid [1,5] range.
func (e *Event) ClampSeverity() {
	if e.Severity < 1 {
		e.Severity = 1
	} else if e.Severity > 5 {
		e.Severity = 5
	}
}

// ClampConfidence forces Confidence into the valid [0.0,1.0] range.
func (e *Event) ClampConfidence() {
	if e.Confidence < 0 {
		e.Confidence = 0
	} else if e.Confidence > 1 {
		e.Confidence = 1
	}
}

// Validate checks the enum domains and the clusterHash/article invariants
// required before an Event can be inserted.
func (e *Event) Validate() error {
	if e.ClusterHash == "" {
		return &ValidationError{Field: "clusterHash", Message: "clusterHash is required"}
	}
	if e.ArticleCount < 1 {
		return &ValidationError{Field: "articleCount", Message: "event must have at least one contributing article"}
	}

	validEventTypes := map[EventType]bool{
		EventTypeSecurity: true, EventTypePolitical: true, EventTypeEconomic: true,
		EventTypeHumanitarian: true, EventTypeInfrastructure: true, EventTypeLegal: true,
	}
	if !validEventTypes[e.EventType] {
		return &ValidationError{Field: "eventType", Message: fmt.Sprintf("invalid eventType: %s", e.EventType)}
	}

	validScopes := map[Scope]bool{
		ScopeLocal: true, ScopeState: true, ScopeNational: true, ScopeCrossBorder: true,
	}
	if !validScopes[e.Scope] {
		return &ValidationError{Field: "scope", Message: fmt.Sprintf("invalid scope: %s", e.Scope)}
	}

	validTiers := map[SourceTier]bool{
		SourceTierOne: true, SourceTierTwo: true, SourceTierThree: true,
	}
	if !validTiers[e.SourceTier] {
		return &ValidationError{Field: "sourceTier", Message: fmt.Sprintf("invalid sourceTier: %s", e.SourceTier)}
	}

	validVerification := map[VerificationStatus]bool{
		VerificationConfirmed: true, VerificationReported: true, VerificationUnverified: true,
	}
	if !validVerification[e.VerificationStatus] {
		return &ValidationError{Field: "verificationStatus", Message: fmt.Sprintf("invalid verificationStatus: %s", e.VerificationStatus)}
	}

	if e.Severity < 1 || e.Severity > 5 {
		return &ValidationError{Field: "severity", Message: "severity must be clamped to [1,5] before validation"}
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return &ValidationError{Field: "confidence", Message: "confidence must be clamped to [0,1] before validation"}
	}

	return nil
}
