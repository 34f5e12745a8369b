package digest

import (
	"context"
	"fmt"
	"sort"
)

// buildTopline computes total counts and the per-eventType breakdown. A
// type present only last week naturally produces a (0, -100%) row, since
// the union of both weeks' types is walked and percentChange(0, prev>0)
// evaluates to -100.
func (s *Service) buildTopline(ctx context.Context, thisWeek, lastWeek Window, baselineWeak bool) (Topline, error) {
	curCounts, err := s.EventRepo.CountByType(ctx, thisWeek.From, thisWeek.To)
	if err != nil {
		return Topline{}, fmt.Errorf("buildTopline: this week: %w", err)
	}
	prevCounts, err := s.EventRepo.CountByType(ctx, lastWeek.From, lastWeek.To)
	if err != nil {
		return Topline{}, fmt.Errorf("buildTopline: last week: %w", err)
	}

	curByType := toCountMap(curCounts)
	prevByType := toCountMap(prevCounts)
	types := unionKeys(curByType, prevByType)

	rows := make([]TypeRow, 0, len(types))
	var totalCur, totalPrev int
	for _, t := range types {
		cur := curByType[t]
		prev := prevByType[t]
		totalCur += cur
		totalPrev += prev
		rows = append(rows, TypeRow{
			EventType:     t,
			CountThisWeek: cur,
			CountLastWeek: prev,
			ChangePercent: percentChangePtr(cur, prev, baselineWeak),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CountThisWeek != rows[j].CountThisWeek {
			return rows[i].CountThisWeek > rows[j].CountThisWeek
		}
		return rows[i].EventType < rows[j].EventType
	})

	return Topline{
		TotalThisWeek: totalCur,
		TotalLastWeek: totalPrev,
		ChangePercent: percentChangePtr(totalCur, totalPrev, baselineWeak),
		ByType:        rows,
	}, nil
}
