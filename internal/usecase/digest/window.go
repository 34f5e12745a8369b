package digest

import (
	"fmt"
	"math"
	"time"
)

// NewWindows computes the this-week/last-week bounds from now, rounded to
// day boundaries in now's location: this week is [now-7d, now), last week
// is [now-14d, now-7d).
func NewWindows(now time.Time) (thisWeek, lastWeek Window) {
	today := dayBoundary(now)

	thisWeek = Window{From: today.AddDate(0, 0, -7), To: today}
	lastWeek = Window{From: today.AddDate(0, 0, -14), To: today.AddDate(0, 0, -7)}

	thisWeek.Label = isoRangeLabel(thisWeek.From, thisWeek.To)
	lastWeek.Label = isoRangeLabel(lastWeek.From, lastWeek.To)
	return thisWeek, lastWeek
}

func dayBoundary(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isoRangeLabel(from, to time.Time) string {
	return fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// percentChange computes round(((cur-prev)/prev) x 100), with the fixed
// points prev=cur=0 -> 0 and prev=0, cur>0 -> +100.
func percentChange(cur, prev int) int {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(cur-prev) / float64(prev) * 100))
}

// percentChangePtr applies percentChange unless the baseline guard has
// suppressed percent comparisons for the week, in which case it returns nil
// so renderers can distinguish "no data" from "0% change".
func percentChangePtr(cur, prev int, baselineWeak bool) *int {
	if baselineWeak {
		return nil
	}
	v := percentChange(cur, prev)
	return &v
}
