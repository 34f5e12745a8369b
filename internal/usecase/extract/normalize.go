package extract

import (
	"math"
	"time"

	"hornwatch/internal/domain/entity"
)

// defaultConfidence fills in for a missing confidence field. 0.5 sits at
// the midpoint so an absent field neither forces acceptance nor forces the
// low-confidence quarantine path on its own.
const defaultConfidence = 0.5

// buildEvent converts a hard-validated rawExtraction into an Event for
// cluster c. It applies scope/verificationStatus defaults, rounds
// severity, defaults a missing confidence, derives sourceTier from the
// cluster's sources, and normalizes actor names. Callers must run
// hardErrors and the confidence quarantine check before trusting the
// result.
func buildEvent(raw *rawExtraction, c *entity.Cluster, modelVersion string) *entity.Event {
	severity := 1
	if raw.Severity != nil {
		severity = int(math.Round(*raw.Severity))
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}

	scope := entity.Scope(raw.Scope)
	if scope == "" {
		scope = entity.ScopeLocal
	}

	verification := entity.VerificationStatus(raw.VerificationStatus)
	if verification == "" {
		verification = entity.VerificationReported
	}

	event := &entity.Event{
		ClusterHash:        c.ClusterHash,
		Summary:            raw.Summary,
		Country:            raw.Country,
		Regions:            raw.Regions,
		EventType:          entity.EventType(raw.EventType),
		EventSubtype:       raw.EventSubtype,
		Severity:           severity,
		Scope:              scope,
		SourceTier:         sourceTier(c.Articles),
		VerificationStatus: verification,
		Confidence:         confidence,
		Rationale:          raw.Rationale,
		Actors:             raw.Actors,
		ActorsNormalized:   normalizeActors(raw.Actors),
		ArticleCount:       len(c.Articles),
		Sources:            c.Sources,
		ArticleURLs:        articleURLs(c),
		PrimaryURL:         c.PrimaryArticle.URL,
		PrimaryTitle:       c.PrimaryArticle.Title,
		PublishedAt:        c.LatestDate,
		ExtractedAt:        time.Now(),
		ModelVersion:       modelVersion,
		PromptVersion:      promptVersion,
	}
	event.ClampSeverity()
	event.ClampConfidence()
	return event
}

func articleURLs(c *entity.Cluster) []string {
	urls := make([]string, len(c.Articles))
	for i, a := range c.Articles {
		urls[i] = a.URL
	}
	return urls
}
