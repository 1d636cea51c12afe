// internal/adapters/report/json.go
package report

import (
	"encoding/json"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/errors"
)

// JSONWriter emite el reporte dentro de un envelope con metadata del
// generador, pensado para consumo por herramientas posteriores.
type JSONWriter struct {
	version string
}

// NewJSONWriter crea el writer con la versión del binario.
func NewJSONWriter(version string) *JSONWriter {
	return &JSONWriter{version: version}
}

// Format retorna el formato emitido.
func (w *JSONWriter) Format() domain.ReportFormat {
	return domain.FormatJSON
}

type jsonEnvelope struct {
	Metadata jsonMetadata `json:"metadata"`
	Data     jsonData     `json:"data"`
}

type jsonMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Generator   string    `json:"generator"`
	Version     string    `json:"version"`
	RunID       string    `json:"run_id"`
}

type jsonData struct {
	Target    string                   `json:"target"`
	Stats     domain.ReportStats       `json:"stats"`
	PerSource map[string]int           `json:"per_source"`
	Records   []*domain.SubdomainRecord `json:"records"`
	Liveness  []domain.LivenessResult  `json:"liveness"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

// Write serializa y persiste el reporte.
func (w *JSONWriter) Write(report *domain.Report, dir string) (domain.ReportArtifact, error) {
	env := jsonEnvelope{
		Metadata: jsonMetadata{
			GeneratedAt: report.GeneratedAt,
			Generator:   "deivao-recon",
			Version:     w.version,
			RunID:       report.RunID,
		},
		Data: jsonData{
			Target:    report.Target,
			Stats:     report.Stats,
			PerSource: report.PerSource,
			Records:   report.Records,
			Liveness:  report.Liveness,
			Warnings:  report.Warnings,
		},
	}

	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return domain.ReportArtifact{}, errors.Wrap(err, "serializando reporte JSON")
	}
	return writeArtifact(report, dir, domain.FormatJSON, raw)
}
