// internal/core/domain/report.go
package domain

import "time"

// ReportFormat identifica el formato de salida de un reporte.
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
	FormatJSON     ReportFormat = "json"
)

// Extension retorna la extensión de archivo del formato.
func (f ReportFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	}
	return "txt"
}

// IsValid verifica que el formato sea uno de los conocidos.
func (f ReportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatJSON:
		return true
	}
	return false
}

// Report es el modelo único del que se renderizan todos los formatos.
// Ningún writer tiene una fuente de verdad propia.
type Report struct {
	Target      string    `json:"target"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Stats ReportStats `json:"stats"`

	// PerSource: subdominios aportados por cada herramienta
	PerSource map[string]int `json:"per_source"`

	// SourceOrder fija el orden de presentación de PerSource
	SourceOrder []string `json:"-"`

	Records  []*SubdomainRecord `json:"subdomains"`
	Liveness []LivenessResult   `json:"liveness"`

	Warnings []string `json:"warnings,omitempty"`
}

// ReportStats son los números de cabecera del reporte.
type ReportStats struct {
	DurationMinutes float64 `json:"duration_minutes"`
	TotalFound      int     `json:"total_found"`
	NewFound        int     `json:"new_found"`
	Active          int     `json:"active"`
	Inactive        int     `json:"inactive"`
	Unknown         int     `json:"unknown"`
	SuccessRate     float64 `json:"success_rate"`
}

// ActiveHosts retorna solo los resultados activos, en orden de agregación.
func (r *Report) ActiveHosts() []LivenessResult {
	active := make([]LivenessResult, 0, len(r.Liveness))
	for _, l := range r.Liveness {
		if l.Status == LivenessActive {
			active = append(active, l)
		}
	}
	return active
}

// ReportArtifact describe un reporte escrito a disco. Write-once:
// los timestamps crecen estrictamente entre ejecuciones, así que un
// path nunca colisiona con un reporte previo.
type ReportArtifact struct {
	Target      string       `json:"target"`
	Format      ReportFormat `json:"format"`
	GeneratedAt time.Time    `json:"generated_at"`
	Path        string       `json:"path"`
}
