// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/ui"
)

// PipelineOrchestrator procesa el batch completo: por cada target corre
// el pipeline enumerate -> aggregate -> probe -> report, con aislamiento
// estricto de fallos. Un target que falla nunca afecta a los demás;
// retorna solo cuando todos fueron intentados.
type PipelineOrchestrator struct {
	tools       []ports.Tool
	prober      ports.Prober
	workspace   ports.Workspace
	coordinator *StageCoordinator
	aggregator  *Aggregator
	reporter    *ReportGenerator
	notifier    ports.Notifier // nil cuando las notificaciones están deshabilitadas
	presenter   ui.Presenter
	logger      logx.Logger

	// notifyWG cuenta las entregas en vuelo; Run espera antes de
	// retornar para que ningún evento muera con el proceso
	notifyWG sync.WaitGroup
}

// OrchestratorConfig agrupa las dependencias del orchestrator.
type OrchestratorConfig struct {
	Tools     []ports.Tool
	Prober    ports.Prober
	Workspace ports.Workspace
	Writers   []ports.ReportWriter
	Notifier  ports.Notifier
	Presenter ui.Presenter
	Workers   int
	Logger    logx.Logger
}

// NewPipelineOrchestrator construye el orchestrator y sus stages.
func NewPipelineOrchestrator(cfg OrchestratorConfig) (*PipelineOrchestrator, error) {
	if len(cfg.Tools) == 0 {
		return nil, domain.ErrNoToolsAvailable
	}
	if cfg.Workspace == nil {
		return nil, fmt.Errorf("%w: workspace is required", domain.ErrInvalidConfig)
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}
	if cfg.Presenter == nil {
		cfg.Presenter = ui.NewQuietPresenter()
	}

	return &PipelineOrchestrator{
		tools:       cfg.Tools,
		prober:      cfg.Prober,
		workspace:   cfg.Workspace,
		coordinator: NewStageCoordinator(cfg.Workspace, cfg.Workers, cfg.Logger),
		aggregator:  NewAggregator(cfg.Workspace, cfg.Logger),
		reporter:    NewReportGenerator(cfg.Workspace, cfg.Writers, cfg.Logger),
		notifier:    cfg.Notifier,
		presenter:   cfg.Presenter,
		logger:      cfg.Logger.With("component", "orchestrator"),
	}, nil
}

// Run procesa todos los targets del batch secuencialmente y retorna el
// resumen completo. Cada target aparece exactamente una vez en el
// resumen, haya terminado como haya terminado.
func (o *PipelineOrchestrator) Run(ctx context.Context, input *TargetInput) *domain.BatchSummary {
	runID := uuid.NewString()
	batch := domain.NewBatchSummary(runID)

	for _, s := range input.Skipped {
		batch.Add(s)
	}

	o.logger.Info("batch started",
		"run_id", runID,
		"targets", len(input.Targets),
		"tools", len(o.tools),
	)
	o.emit(ctx, ports.NewEvent(ports.EventTypeBatchStarted, runID, "", ports.BatchStartedEvent{
		Targets: targetNames(input.Targets),
		Tools:   o.toolNames(),
	}))

	for i, target := range input.Targets {
		if ctx.Err() != nil {
			// Cancelación: los targets restantes quedan registrados,
			// nunca silenciosamente omitidos
			batch.Add(domain.TargetSummary{
				Target: target.Root,
				Status: domain.TargetFailed,
				Err:    "batch cancelled",
			})
			continue
		}

		o.presenter.TargetStarted(i+1, len(input.Targets), target.Root)
		o.emit(ctx, ports.NewEvent(ports.EventTypeTargetStarted, runID, target.Root, nil))

		summary := o.processTarget(ctx, runID, target)
		batch.Add(summary)

		o.presenter.TargetFinished(ui.TargetResult{
			Target:   summary.Target,
			Status:   string(summary.Status),
			Found:    summary.Found,
			NewFound: summary.NewFound,
			Active:   summary.Active,
			Duration: summary.Duration,
			Degraded: summary.DegradedStages,
			Err:      summary.Err,
		})

		eventType := ports.EventTypeTargetCompleted
		if summary.Status == domain.TargetFailed {
			eventType = ports.EventTypeTargetFailed
		}
		o.emit(ctx, ports.NewEvent(eventType, runID, target.Root, ports.TargetCompletedEvent{
			Status:   string(summary.Status),
			Found:    summary.Found,
			Active:   summary.Active,
			Duration: summary.Duration,
		}))
	}

	batch.Finalize()

	counts := batch.CountByStatus()
	o.logger.Info("batch finished",
		"run_id", runID,
		"attempted", batch.Attempted(),
		"completed", counts[domain.TargetCompleted],
		"degraded", counts[domain.TargetDegraded],
		"failed", counts[domain.TargetFailed],
		"skipped", counts[domain.TargetSkipped],
		"duration", batch.Duration().Round(time.Second).String(),
	)

	o.presenter.Summary(ui.BatchResult{
		Completed: counts[domain.TargetCompleted],
		Degraded:  counts[domain.TargetDegraded],
		Failed:    counts[domain.TargetFailed],
		Skipped:   counts[domain.TargetSkipped],
		Duration:  batch.Duration(),
	})

	o.emit(ctx, ports.NewEvent(ports.EventTypeBatchCompleted, runID, "", ports.BatchCompletedEvent{
		TargetsAttempted: batch.Attempted(),
		TargetsDegraded:  counts[domain.TargetDegraded],
		TargetsFailed:    counts[domain.TargetFailed],
		Duration:         batch.Duration(),
	}))

	// El evento de cierre es el que importa: esperar las entregas en
	// vuelo (cada una acotada por su propio timeout) antes de retornar
	o.notifyWG.Wait()

	return batch
}

// processTarget corre el pipeline completo de un target. Toda falla de
// stage queda capturada en el run; nada escapa de esta función.
func (o *PipelineOrchestrator) processTarget(ctx context.Context, runID string, target domain.Target) domain.TargetSummary {
	run := domain.NewPipelineRun(runID, target)
	logger := o.logger.With("target", target.Root)

	// Stage 1: enumeración
	run.Invocations = o.coordinator.Enumerate(ctx, target, o.tools)
	failedTools := 0
	for _, tool := range o.tools {
		inv, ok := run.Invocations[tool.Name()]
		if !ok {
			continue
		}
		o.presenter.ToolFinished(inv.Tool, outcomeStatus(inv.Outcome), inv.Duration(), inv.LineCount())
		if inv.Outcome.Failed() {
			failedTools++
			run.AddWarning("enumerate", fmt.Sprintf("%s: %s", inv.Tool, inv.Outcome))
		}
	}
	if failedTools == len(o.tools) {
		run.AddError("enumerate", "all enumeration tools failed", false)
	}

	// Stage 2: agregación
	agg, err := o.aggregator.Aggregate(target, o.tools, run.Invocations)
	if err != nil {
		run.AddError("aggregate", err.Error(), false)
		agg = &AggregateResult{}
	} else if agg.Skipped > 0 {
		run.AddWarning("aggregate", fmt.Sprintf("%d malformed lines discarded", agg.Skipped))
	}
	run.Records = agg.Records
	o.presenter.StageNote(fmt.Sprintf("aggregated %d subdomains (%d new)", len(agg.Records), len(agg.NewNames)))

	// Stage 3: liveness probing
	run.Liveness = o.probeStage(ctx, run, recordNames(agg.Records))
	counts := domain.CountByStatus(run.Liveness)
	o.presenter.StageNote(fmt.Sprintf("probe: %d active, %d inactive, %d unknown",
		counts[domain.LivenessActive], counts[domain.LivenessInactive], counts[domain.LivenessUnknown]))

	if err := o.writeActive(target, run.Liveness); err != nil {
		run.AddError("probe", "writing active list: "+err.Error(), false)
	}

	// Stage 4: reporte
	o.reporter.Generate(run, o.tools)

	run.Finalize()
	logger.Info("target finished", "summary", run.Summary())

	return o.summarize(run, agg, counts)
}

// probeStage ejecuta el probe. Si no hay prober o falla por completo,
// todos los hosts quedan unknown y el stage se marca degradado.
func (o *PipelineOrchestrator) probeStage(ctx context.Context, run *domain.PipelineRun, names []string) []domain.LivenessResult {
	if len(names) == 0 {
		return []domain.LivenessResult{}
	}
	if o.prober == nil {
		run.AddWarning("probe", "no prober available, all hosts unknown")
		return allUnknown(names, "no prober available")
	}

	results, err := o.prober.Probe(ctx, run.Target, names)
	if err != nil {
		run.AddError("probe", err.Error(), false)
		return allUnknown(names, err.Error())
	}
	return results
}

// writeActive reescribe recon/active_subdomains.txt con el subconjunto
// activo. El archivo se crea aunque quede vacío.
func (o *PipelineOrchestrator) writeActive(target domain.Target, results []domain.LivenessResult) error {
	store, err := o.workspace.ActiveStore(target)
	if err != nil {
		return err
	}

	active := make([]string, 0, len(results))
	for _, r := range results {
		if r.Status == domain.LivenessActive {
			active = append(active, r.Subdomain)
		}
	}
	return store.Replace(active)
}

func (o *PipelineOrchestrator) summarize(run *domain.PipelineRun, agg *AggregateResult, counts map[domain.LivenessStatus]int) domain.TargetSummary {
	status := domain.TargetCompleted
	if len(run.Warnings) > 0 || len(run.Errors) > 0 {
		status = domain.TargetDegraded
	}
	if len(run.Artifacts) == 0 {
		// Sin reporte en disco el target no cuenta como procesado
		status = domain.TargetFailed
	}

	paths := make([]string, 0, len(run.Artifacts))
	for _, a := range run.Artifacts {
		paths = append(paths, a.Path)
	}

	summary := domain.TargetSummary{
		Target:         run.Target.Root,
		Status:         status,
		Found:          len(run.Records),
		NewFound:       len(agg.NewNames),
		Active:         counts[domain.LivenessActive],
		Inactive:       counts[domain.LivenessInactive],
		Unknown:        counts[domain.LivenessUnknown],
		DegradedStages: run.DegradedStages(),
		ArtifactPaths:  paths,
		Duration:       run.Duration(),
	}
	if status == domain.TargetFailed {
		summary.Err = "no report artifact written"
	}
	return summary
}

// emit entrega un evento de notificación en background con timeout
// propio. La entrega nunca bloquea el pipeline; las pendientes se
// esperan recién al cierre del batch.
func (o *PipelineOrchestrator) emit(ctx context.Context, event ports.Event) {
	if o.notifier == nil {
		return
	}
	o.notifyWG.Add(1)
	go func() {
		defer o.notifyWG.Done()
		// Desacoplado de la cancelación del batch: el evento de cierre
		// debe poder salir aunque el ctx raíz ya esté cancelado
		nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := o.notifier.Notify(nctx, event); err != nil {
			o.logger.Debug("notification failed", "event", string(event.Type), "error", err.Error())
		}
	}()
}

// Helpers

func (o *PipelineOrchestrator) toolNames() []string {
	names := make([]string, 0, len(o.tools))
	for _, t := range o.tools {
		names = append(names, t.Name())
	}
	return names
}

func targetNames(targets []domain.Target) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Root)
	}
	return names
}

func recordNames(records []*domain.SubdomainRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

func allUnknown(names []string, reason string) []domain.LivenessResult {
	results := make([]domain.LivenessResult, 0, len(names))
	for _, name := range names {
		results = append(results, domain.LivenessResult{
			Subdomain: name,
			Status:    domain.LivenessUnknown,
			Err:       reason,
		})
	}
	return results
}

func outcomeStatus(outcome domain.ToolOutcome) ui.Status {
	switch outcome {
	case domain.OutcomeSuccess:
		return ui.StatusSuccess
	case domain.OutcomeNotFound:
		return ui.StatusSkipped
	case domain.OutcomeTimeout:
		return ui.StatusWarning
	default:
		return ui.StatusError
	}
}
