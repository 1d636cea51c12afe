// internal/adapters/report/html.go
package report

import (
	"bytes"
	"html/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
)

// HTMLWriter renderiza el reporte como página HTML autocontenida con
// CSS embebido. Deriva del mismo modelo que Markdown y JSON.
type HTMLWriter struct {
	tmpl *template.Template
}

// NewHTMLWriter compila el template una sola vez.
func NewHTMLWriter() (*HTMLWriter, error) {
	tmpl, err := template.New("report").Funcs(sprig.HtmlFuncMap()).Parse(htmlTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLWriter{tmpl: tmpl}, nil
}

// Format retorna el formato emitido.
func (w *HTMLWriter) Format() domain.ReportFormat {
	return domain.FormatHTML
}

// Write renderiza y persiste el reporte.
func (w *HTMLWriter) Write(report *domain.Report, dir string) (domain.ReportArtifact, error) {
	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, report); err != nil {
		return domain.ReportArtifact{}, err
	}
	return writeArtifact(report, dir, domain.FormatHTML, buf.Bytes())
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Bug Bounty Report: {{ .Target }}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 60rem; color: #24292e; }
h1 { border-bottom: 2px solid #0366d6; padding-bottom: .3rem; }
h2 { margin-top: 2rem; color: #0366d6; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #d1d5da; padding: .4rem .8rem; text-align: left; }
th { background: #f6f8fa; }
tr:nth-child(even) { background: #fafbfc; }
code { background: #f6f8fa; padding: .1rem .3rem; border-radius: 3px; }
.meta { color: #586069; font-size: .9rem; }
.warn { color: #b08800; }
.zero { color: #586069; font-style: italic; }
</style>
</head>
<body>
<h1>Bug Bounty Report: {{ .Target | lower }}</h1>
<p class="meta">Generated {{ .GeneratedAt.Format "2006-01-02 15:04:05" }} &middot; run <code>{{ .RunID }}</code></p>

<h2>Summary</h2>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Duration (minutes)</td><td>{{ printf "%.1f" .Stats.DurationMinutes }}</td></tr>
<tr><td>Subdomains found</td><td>{{ .Stats.TotalFound }}</td></tr>
<tr><td>New this run</td><td>{{ .Stats.NewFound }}</td></tr>
<tr><td>Active hosts</td><td>{{ .Stats.Active }}</td></tr>
<tr><td>Inactive hosts</td><td>{{ .Stats.Inactive }}</td></tr>
<tr><td>Unknown</td><td>{{ .Stats.Unknown }}</td></tr>
<tr><td>Success rate</td><td>{{ printf "%.1f%%" .Stats.SuccessRate }}</td></tr>
</table>

<h2>Findings by Source</h2>
{{ if .SourceOrder }}
<table>
<tr><th>Source</th><th>Subdomains</th></tr>
{{ $per := .PerSource }}
{{ range .SourceOrder }}<tr><td>{{ . }}</td><td>{{ index $per . }}</td></tr>
{{ end }}
</table>
{{ else }}
<p class="zero">No enumeration sources produced output.</p>
{{ end }}

<h2>Active Hosts</h2>
{{ $active := .ActiveHosts }}
{{ if $active }}
<table>
<tr><th>Host</th><th>Scheme</th><th>HTTP Status</th></tr>
{{ range $active }}<tr><td>{{ .Subdomain }}</td><td>{{ default "-" .Scheme }}</td><td>{{ if .StatusCode }}{{ .StatusCode }}{{ else }}-{{ end }}</td></tr>
{{ end }}
</table>
{{ else }}
<p class="zero">No active hosts found.</p>
{{ end }}

{{ if .Warnings }}
<h2>Warnings</h2>
<ul>
{{ range .Warnings }}<li class="warn">{{ . }}</li>
{{ end }}
</ul>
{{ end }}
</body>
</html>
`
