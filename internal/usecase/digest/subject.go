package digest

import "fmt"

// Subject renders the weekly send's subject line:
// "Horn Risk Delta — Week {N} | {count} events[, {k} high-severity]".
func (d *Digest) Subject() string {
	_, week := d.Generated.ISOWeek()
	subject := fmt.Sprintf("Horn Risk Delta — Week %d | %d events", week, d.Topline.TotalThisWeek)
	if len(d.HighSeverity) > 0 {
		subject += fmt.Sprintf(", %d high-severity", len(d.HighSeverity))
	}
	return subject
}
