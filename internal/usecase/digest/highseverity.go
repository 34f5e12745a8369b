package digest

import (
	"context"
	"fmt"
)

// buildHighSeverity fetches severity>=4 events for the window and bundles
// same-story repeats.
func (s *Service) buildHighSeverity(ctx context.Context, thisWeek Window) ([]HighSeverityEvent, error) {
	events, err := s.EventRepo.ListBySeverityWindow(ctx, thisWeek.From, thisWeek.To, minHighSeverity)
	if err != nil {
		return nil, fmt.Errorf("buildHighSeverity: %w", err)
	}
	return bundleHighSeverity(events), nil
}
