package digest

import (
	"context"
	"fmt"
	"sort"

	"hornwatch/internal/domain/region"
	"hornwatch/internal/repository"
)

const topHotRegions = 10

// buildHotRegions ranks regions by severity-weighted event count for the
// window, top 10, each with its week-over-week raw-count change.
func (s *Service) buildHotRegions(ctx context.Context, thisWeek, lastWeek Window, baselineWeak bool) ([]RegionRow, error) {
	cur, err := s.EventRepo.RegionSeverityWindow(ctx, thisWeek.From, thisWeek.To)
	if err != nil {
		return nil, fmt.Errorf("buildHotRegions: this week: %w", err)
	}
	prev, err := s.EventRepo.RegionSeverityWindow(ctx, lastWeek.From, lastWeek.To)
	if err != nil {
		return nil, fmt.Errorf("buildHotRegions: last week: %w", err)
	}

	prevByRegion := make(map[string]repository.RegionSeverity, len(prev))
	for _, rs := range prev {
		prevByRegion[rs.Region] = rs
	}

	sort.SliceStable(cur, func(i, j int) bool { return cur[i].WeightedSeverity > cur[j].WeightedSeverity })
	if len(cur) > topHotRegions {
		cur = cur[:topHotRegions]
	}

	rows := make([]RegionRow, 0, len(cur))
	for _, rs := range cur {
		prevRow := prevByRegion[rs.Region]
		var avg float64
		if rs.EventCount > 0 {
			avg = rs.WeightedSeverity / float64(rs.EventCount)
		}
		rows = append(rows, RegionRow{
			Region:           displayRegion(rs.Region),
			EventCount:       rs.EventCount,
			WeightedSeverity: rs.WeightedSeverity,
			AverageSeverity:  avg,
			ChangePercent:    percentChangePtr(rs.EventCount, prevRow.EventCount, baselineWeak),
		})
	}
	return rows, nil
}

func displayRegion(name string) string {
	collapsed := region.CollapseDisplay([]string{name})
	if len(collapsed) == 0 {
		return name
	}
	return collapsed[0]
}
