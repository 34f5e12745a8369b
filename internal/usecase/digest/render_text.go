package digest

import (
	"bytes"
	"fmt"
	"text/template"
)

const textTemplateSrc = `Horn Risk Delta — {{.ThisWeek.Label}}
{{if .BaselineWeak}}(last week's event count was too low for percent comparisons; raw counts only)
{{end}}
TOPLINE
Total events: {{.Topline.TotalThisWeek}} (last week {{.Topline.TotalLastWeek}}{{with .Topline.ChangePercent}}, {{pct .}}{{end}})
{{range .Topline.ByType}}  {{.EventType}}: {{.CountThisWeek}} (last week {{.CountLastWeek}}{{with .ChangePercent}}, {{pct .}}{{end}})
{{end}}
HIGH-SEVERITY EVENTS
{{range .HighSeverity}}  [{{.Severity}}] {{.Country}} — {{.EventSubtype}} ({{join .Regions}})
    {{.Summary}}
{{if .Rationale}}    {{.Rationale}}
{{end}}{{end}}
HOT REGIONS
{{range .HotRegions}}  {{.Region}}: {{.EventCount}} events, avg severity {{printf "%.1f" .AverageSeverity}}{{with .ChangePercent}}, {{pct .}}{{end}}
{{end}}
ACTOR SPIKES
{{range .ActorSpikes}}  {{.Actor}}: {{.CountThisWeek}} (last week {{.CountLastWeek}}{{with .ChangePercent}}, {{pct .}}{{end}})
{{end}}`

var textTemplate = template.Must(template.New("digest-text").Funcs(template.FuncMap{
	"pct":  formatPercent,
	"join": joinStrings,
}).Parse(textTemplateSrc))

func formatPercent(p *int) string {
	if p == nil {
		return "n/a"
	}
	if *p > 0 {
		return fmt.Sprintf("+%d%%", *p)
	}
	return fmt.Sprintf("%d%%", *p)
}

// Text renders the digest for logs and the email's text/plain part.
func (d *Digest) Text() (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("Digest.Text: %w", err)
	}
	return buf.String(), nil
}
