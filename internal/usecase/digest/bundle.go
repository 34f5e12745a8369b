package digest

import (
	"sort"
	"strings"

	"hornwatch/internal/domain/entity"
	"hornwatch/internal/domain/region"
)

const (
	minHighSeverity = 4
	maxHighSeverity = 8
)

type eventBundle struct {
	first       *entity.Event
	sourceCount int
	sources     map[string]struct{}
	urls        map[string]struct{}
	regions     map[string]struct{}
	actors      map[string]struct{}
}

// sameStory reports whether two events describe the same underlying story
// per the bundling rule: same country, same eventSubtype (case-insensitive),
// same severity, and overlapping region lists.
func sameStory(a, b *entity.Event) bool {
	return a.Country == b.Country &&
		strings.EqualFold(a.EventSubtype, b.EventSubtype) &&
		a.Severity == b.Severity &&
		region.Overlap(a.Regions, b.Regions)
}

// bundleHighSeverity dedups same-story repeats among severity>=4 events,
// merging sourceCount/sources/urls/regions/actors while keeping the first
// member's summary and rationale, then caps the result at maxHighSeverity.
func bundleHighSeverity(events []*entity.Event) []HighSeverityEvent {
	var bundles []*eventBundle

	for _, e := range events {
		merged := false
		for _, b := range bundles {
			if sameStory(b.first, e) {
				b.sourceCount += len(e.Sources)
				for _, s := range e.Sources {
					b.sources[s] = struct{}{}
				}
				for _, u := range e.ArticleURLs {
					b.urls[u] = struct{}{}
				}
				for _, r := range e.Regions {
					b.regions[r] = struct{}{}
				}
				for _, a := range e.ActorsNormalized {
					b.actors[a] = struct{}{}
				}
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		bundles = append(bundles, &eventBundle{
			first:       e,
			sourceCount: len(e.Sources),
			sources:     setOf(e.Sources),
			urls:        setOf(e.ArticleURLs),
			regions:     setOf(e.Regions),
			actors:      setOf(e.ActorsNormalized),
		})
	}

	out := make([]HighSeverityEvent, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, HighSeverityEvent{
			Country:      b.first.Country,
			Regions:      region.CollapseDisplay(sortedKeys(b.regions)),
			EventType:    string(b.first.EventType),
			EventSubtype: b.first.EventSubtype,
			Severity:     b.first.Severity,
			Summary:      b.first.Summary,
			Rationale:    cleanRationale(b.first.Rationale),
			SourceCount:  b.sourceCount,
			Sources:      sortedKeys(b.sources),
			ArticleURLs:  sortedKeys(b.urls),
			Actors:       sortedKeys(b.actors),
			PublishedAt:  b.first.PublishedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if len(out) > maxHighSeverity {
		out = out[:maxHighSeverity]
	}
	return out
}
