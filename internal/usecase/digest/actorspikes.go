package digest

import (
	"context"
	"fmt"
	"sort"
)

const topActorSpikes = 15

// buildActorSpikes ranks normalized actors by week-over-week change
// magnitude, positive changes first on ties, top 15.
func (s *Service) buildActorSpikes(ctx context.Context, thisWeek, lastWeek Window, baselineWeak bool) ([]ActorRow, error) {
	cur, err := s.EventRepo.ActorCountsWindow(ctx, thisWeek.From, thisWeek.To)
	if err != nil {
		return nil, fmt.Errorf("buildActorSpikes: this week: %w", err)
	}
	prev, err := s.EventRepo.ActorCountsWindow(ctx, lastWeek.From, lastWeek.To)
	if err != nil {
		return nil, fmt.Errorf("buildActorSpikes: last week: %w", err)
	}

	curByActor := make(map[string]int, len(cur))
	for _, ac := range cur {
		curByActor[ac.Actor] = ac.Count
	}
	prevByActor := make(map[string]int, len(prev))
	for _, ac := range prev {
		prevByActor[ac.Actor] = ac.Count
	}

	actors := unionKeys(curByActor, prevByActor)
	rows := make([]ActorRow, 0, len(actors))
	for _, a := range actors {
		c := curByActor[a]
		p := prevByActor[a]
		rows = append(rows, ActorRow{
			Actor:         a,
			CountThisWeek: c,
			CountLastWeek: p,
			ChangePercent: percentChangePtr(c, p, baselineWeak),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		mi, mj := changeMagnitude(rows[i].ChangePercent), changeMagnitude(rows[j].ChangePercent)
		if mi != mj {
			return mi > mj
		}
		return ptrVal(rows[i].ChangePercent) > ptrVal(rows[j].ChangePercent)
	})

	if len(rows) > topActorSpikes {
		rows = rows[:topActorSpikes]
	}
	return rows, nil
}

func changeMagnitude(p *int) int {
	if p == nil {
		return 0
	}
	if *p < 0 {
		return -*p
	}
	return *p
}

func ptrVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
