// Package report renders the single report model into Markdown, HTML
// and JSON artifacts. Every writer consumes the same domain.Report;
// no format keeps a source of truth of its own.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
)

// artifactBaseName es el prefijo común de todos los reportes.
const artifactBaseName = "bug_bounty_report"

// artifactPath construye el path write-once de un reporte. El stamp
// tiene resolución de segundos: si el path ya existe (dos ejecuciones
// dentro del mismo segundo), avanza al siguiente segundo libre para
// que los timestamps crezcan estrictamente y nunca se pise un reporte
// anterior.
func artifactPath(dir string, format domain.ReportFormat, at time.Time) (string, time.Time) {
	for {
		name := fmt.Sprintf("%s_%s.%s", artifactBaseName, at.Format("20060102_150405"), format.Extension())
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, at
		}
		at = at.Add(time.Second)
	}
}

// writeArtifact escribe el contenido y sella el ReportArtifact.
func writeArtifact(report *domain.Report, dir string, format domain.ReportFormat, content []byte) (domain.ReportArtifact, error) {
	path, at := artifactPath(dir, format, report.GeneratedAt)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return domain.ReportArtifact{}, fmt.Errorf("%w: %s: %v", domain.ErrReportWrite, path, err)
	}

	return domain.ReportArtifact{
		Target:      report.Target,
		Format:      format,
		GeneratedAt: at,
		Path:        path,
	}, nil
}
