// internal/core/usecases/reporter.go
package usecases

import (
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
)

// ReportGenerator construye el modelo de reporte desde el run y lo
// renderiza en todos los formatos configurados. Un writer que falla no
// impide a los demás: el target solo queda failed si ningún formato
// llegó a disco.
type ReportGenerator struct {
	workspace ports.Workspace
	writers   []ports.ReportWriter
	logger    logx.Logger
}

// NewReportGenerator crea el generador con los writers seleccionados.
func NewReportGenerator(workspace ports.Workspace, writers []ports.ReportWriter, logger logx.Logger) *ReportGenerator {
	return &ReportGenerator{
		workspace: workspace,
		writers:   writers,
		logger:    logger.With("component", "report"),
	}
}

// Generate escribe los reportes del run. Los artifacts escritos quedan
// registrados en el run; cada fallo queda como error no fatal.
func (g *ReportGenerator) Generate(run *domain.PipelineRun, tools []ports.Tool) {
	report := g.buildReport(run, tools)

	dir, err := g.workspace.ReportsDir(run.Target)
	if err != nil {
		run.AddError("report", "cannot create reports directory: "+err.Error(), false)
		return
	}

	for _, w := range g.writers {
		artifact, err := w.Write(report, dir)
		if err != nil {
			run.AddError("report", string(w.Format())+": "+err.Error(), false)
			g.logger.Warn("report write failed",
				"target", run.Target.Root,
				"format", string(w.Format()),
				"error", err.Error(),
			)
			continue
		}
		run.Artifacts = append(run.Artifacts, artifact)
		g.logger.Info("report written",
			"target", run.Target.Root,
			"format", string(w.Format()),
			"path", artifact.Path,
		)
	}
}

// buildReport arma el modelo único del que derivan todos los formatos.
// Un run parcialmente fallido produce un reporte con conteos en cero o
// parciales, nunca un reporte ausente.
func (g *ReportGenerator) buildReport(run *domain.PipelineRun, tools []ports.Tool) *domain.Report {
	counts := domain.CountByStatus(run.Liveness)

	perSource := make(map[string]int)
	sourceOrder := make([]string, 0, len(tools))
	succeeded := 0
	for _, tool := range tools {
		name := tool.Name()
		sourceOrder = append(sourceOrder, name)
		if inv, ok := run.Invocations[name]; ok && !inv.Outcome.Failed() {
			succeeded++
		}
	}
	for _, rec := range run.Records {
		for _, src := range rec.Sources {
			perSource[src]++
		}
	}

	successRate := 0.0
	if len(tools) > 0 {
		successRate = float64(succeeded) / float64(len(tools)) * 100
	}

	newFound := 0
	for _, rec := range run.Records {
		if !rec.Known {
			newFound++
		}
	}

	return &domain.Report{
		Target:      run.Target.Root,
		RunID:       run.ID,
		GeneratedAt: time.Now(),
		Stats: domain.ReportStats{
			DurationMinutes: run.Duration().Minutes(),
			TotalFound:      len(run.Records),
			NewFound:        newFound,
			Active:          counts[domain.LivenessActive],
			Inactive:        counts[domain.LivenessInactive],
			Unknown:         counts[domain.LivenessUnknown],
			SuccessRate:     successRate,
		},
		PerSource:   perSource,
		SourceOrder: sourceOrder,
		Records:     run.Records,
		Liveness:    run.Liveness,
		Warnings:    run.WarningMessages(),
	}
}
