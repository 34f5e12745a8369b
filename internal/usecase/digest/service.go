package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hornwatch/internal/repository"
)

// minBaselineEvents is the last-week event count below which percent-change
// comparisons are suppressed in favor of raw counts only.
const minBaselineEvents = 5

// Service builds a Digest from the Event Store's aggregate and windowed
// queries.
type Service struct {
	EventRepo repository.EventRepository
}

// NewService wires a Digest Builder against an Event Store.
func NewService(eventRepo repository.EventRepository) *Service {
	return &Service{EventRepo: eventRepo}
}

// Build produces the full weekly comparison anchored at now.
func (s *Service) Build(ctx context.Context, now time.Time) (*Digest, error) {
	thisWeek, lastWeek := NewWindows(now)

	lastWeekCounts, err := s.EventRepo.CountByType(ctx, lastWeek.From, lastWeek.To)
	if err != nil {
		return nil, fmt.Errorf("Build: last week totals: %w", err)
	}
	var lastWeekTotal int
	for _, c := range lastWeekCounts {
		lastWeekTotal += int(c.Count)
	}
	baselineWeak := lastWeekTotal < minBaselineEvents

	topline, err := s.buildTopline(ctx, thisWeek, lastWeek, baselineWeak)
	if err != nil {
		return nil, err
	}
	highSeverity, err := s.buildHighSeverity(ctx, thisWeek)
	if err != nil {
		return nil, err
	}
	hotRegions, err := s.buildHotRegions(ctx, thisWeek, lastWeek, baselineWeak)
	if err != nil {
		return nil, err
	}
	actorSpikes, err := s.buildActorSpikes(ctx, thisWeek, lastWeek, baselineWeak)
	if err != nil {
		return nil, err
	}

	d := &Digest{
		Generated:    now,
		ThisWeek:     thisWeek,
		LastWeek:     lastWeek,
		BaselineWeak: baselineWeak,
		Topline:      topline,
		HighSeverity: highSeverity,
		HotRegions:   hotRegions,
		ActorSpikes:  actorSpikes,
	}

	slog.Info("digest built",
		slog.String("window", thisWeek.Label),
		slog.Int("totalEvents", topline.TotalThisWeek),
		slog.Int("highSeverityCount", len(highSeverity)),
		slog.Bool("baselineWeak", baselineWeak),
	)
	return d, nil
}
