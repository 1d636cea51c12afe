// internal/adapters/report/markdown.go
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
)

// MarkdownWriter emite el resumen Markdown, el único formato que se
// genera siempre. Degrada con elegancia: un upstream parcialmente
// caído produce contadores en cero, nunca suprime el reporte.
type MarkdownWriter struct{}

// NewMarkdownWriter crea el writer de Markdown.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Format retorna el formato emitido.
func (w *MarkdownWriter) Format() domain.ReportFormat {
	return domain.FormatMarkdown
}

// Write renderiza y persiste el reporte.
func (w *MarkdownWriter) Write(report *domain.Report, dir string) (domain.ReportArtifact, error) {
	return writeArtifact(report, dir, domain.FormatMarkdown, []byte(render(report)))
}

func render(r *domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Bug Bounty Report: %s\n\n", r.Target)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Run ID:** `%s`\n\n", r.RunID)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Duration (minutes) | %.1f |\n", r.Stats.DurationMinutes)
	fmt.Fprintf(&b, "| Subdomains found | %d |\n", r.Stats.TotalFound)
	fmt.Fprintf(&b, "| New this run | %d |\n", r.Stats.NewFound)
	fmt.Fprintf(&b, "| Active hosts | %d |\n", r.Stats.Active)
	fmt.Fprintf(&b, "| Inactive hosts | %d |\n", r.Stats.Inactive)
	fmt.Fprintf(&b, "| Unknown | %d |\n", r.Stats.Unknown)
	fmt.Fprintf(&b, "| Success rate | %.1f%% |\n\n", r.Stats.SuccessRate)

	b.WriteString("## Findings by Source\n\n")
	if len(r.SourceOrder) == 0 {
		b.WriteString("No enumeration sources produced output.\n\n")
	} else {
		b.WriteString("| Source | Subdomains |\n")
		b.WriteString("|--------|------------|\n")
		for _, src := range r.SourceOrder {
			fmt.Fprintf(&b, "| %s | %d |\n", src, r.PerSource[src])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Active Hosts\n\n")
	active := r.ActiveHosts()
	if len(active) == 0 {
		b.WriteString("No active hosts found.\n\n")
	} else {
		b.WriteString("| Host | Scheme | HTTP Status | Response Time |\n")
		b.WriteString("|------|--------|-------------|---------------|\n")
		for _, h := range active {
			status := "-"
			if h.StatusCode != 0 {
				status = fmt.Sprintf("%d", h.StatusCode)
			}
			elapsed := "-"
			if h.Elapsed > 0 {
				elapsed = h.Elapsed.Round(time.Millisecond).String()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", h.Subdomain, orDash(h.Scheme), status, elapsed)
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
