package digest

import (
	"bytes"
	"fmt"
	"html/template"
)

// severityColors is a muted institutional ladder: the HTML digest must read
// like a situation report, not an alert dashboard.
var severityColors = map[int]string{
	1: "#6b7280",
	2: "#4b7bab",
	3: "#b8860b",
	4: "#b34700",
	5: "#8b1a1a",
}

func severityColor(sev int) string {
	if c, ok := severityColors[sev]; ok {
		return c
	}
	return "#6b7280"
}

const htmlTemplateSrc = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Horn Risk Delta — {{.ThisWeek.Label}}</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; color: #1f2937; max-width: 720px; margin: 0 auto; padding: 24px; }
  h1 { font-size: 20px; border-bottom: 2px solid #1f2937; padding-bottom: 8px; }
  h2 { font-size: 15px; margin-top: 28px; text-transform: uppercase; letter-spacing: 0.04em; color: #374151; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid #e5e7eb; }
  .event { border-left: 4px solid #6b7280; padding: 6px 10px; margin: 8px 0; background: #f9fafb; }
  .weak-baseline { font-size: 12px; color: #9ca3af; font-style: italic; }
</style>
</head>
<body>
<h1>Horn Risk Delta — {{.ThisWeek.Label}}</h1>
{{if .BaselineWeak}}<p class="weak-baseline">Last week's event count was too low for reliable percent comparisons; raw counts only.</p>{{end}}

<h2>Topline</h2>
<p>{{.Topline.TotalThisWeek}} events{{with .Topline.ChangePercent}} ({{pct .}} vs last week){{end}}</p>
<table>
<tr><th>Type</th><th>This week</th><th>Last week</th><th>Change</th></tr>
{{range .Topline.ByType}}<tr><td>{{.EventType}}</td><td>{{.CountThisWeek}}</td><td>{{.CountLastWeek}}</td><td>{{with .ChangePercent}}{{pct .}}{{else}}n/a{{end}}</td></tr>
{{end}}</table>

<h2>High-severity events</h2>
{{range .HighSeverity}}<div class="event" style="border-left-color: {{color .Severity}}">
  <strong>[{{.Severity}}] {{.Country}} — {{.EventSubtype}}</strong> ({{join .Regions}})<br>
  {{.Summary}}
  {{if .Rationale}}<br><em>{{.Rationale}}</em>{{end}}
</div>
{{end}}

<h2>Hot regions</h2>
<table>
<tr><th>Region</th><th>Events</th><th>Avg severity</th><th>Change</th></tr>
{{range .HotRegions}}<tr><td>{{.Region}}</td><td>{{.EventCount}}</td><td>{{printf "%.1f" .AverageSeverity}}</td><td>{{with .ChangePercent}}{{pct .}}{{else}}n/a{{end}}</td></tr>
{{end}}</table>

<h2>Actor spikes</h2>
<table>
<tr><th>Actor</th><th>This week</th><th>Last week</th><th>Change</th></tr>
{{range .ActorSpikes}}<tr><td>{{.Actor}}</td><td>{{.CountThisWeek}}</td><td>{{.CountLastWeek}}</td><td>{{with .ChangePercent}}{{pct .}}{{else}}n/a{{end}}</td></tr>
{{end}}</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("digest-html").Funcs(template.FuncMap{
	"pct":   formatPercent,
	"join":  joinStrings,
	"color": severityColor,
}).Parse(htmlTemplateSrc))

// HTML renders the digest as a standalone document with inline CSS,
// suitable for email.
func (d *Digest) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("Digest.HTML: %w", err)
	}
	return buf.String(), nil
}
