// internal/core/usecases/aggregator.go
package usecases

import (
	"strings"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/errors"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/validator"
)

// Aggregator fusiona la salida de todas las herramientas en la lista
// canónica del target: normalizada, deduplicada, con provenance, y
// persistida en el store append-only. El orden es first-seen bajo
// prioridad fija de herramienta, nunca orden de finalización.
type Aggregator struct {
	workspace ports.Workspace
	logger    logx.Logger
}

// AggregateResult es el resultado de la agregación de un target.
type AggregateResult struct {
	// Records lista completa en orden estable (conocidos primero)
	Records []*domain.SubdomainRecord

	// NewNames subdominios vistos por primera vez, en orden de descubrimiento
	NewNames []string

	// Skipped líneas descartadas por malformadas o fuera de scope
	Skipped int
}

// NewAggregator crea el agregador.
func NewAggregator(workspace ports.Workspace, logger logx.Logger) *Aggregator {
	return &Aggregator{
		workspace: workspace,
		logger:    logger.With("component", "aggregator"),
	}
}

// Aggregate procesa las invocaciones en orden de prioridad de herramienta
// (el slice de tools ya viene ordenado), carga la lista persistida de
// ejecuciones anteriores y añade solo los subdominios genuinamente
// nuevos. Reagregar la misma entrada es un no-op a nivel de bytes.
func (a *Aggregator) Aggregate(target domain.Target, tools []ports.Tool, invocations map[string]*domain.ToolInvocation) (*AggregateResult, error) {
	store, err := a.workspace.AggregateStore(target)
	if err != nil {
		return nil, errors.Wrap(err, "abriendo store agregado")
	}

	existing, err := store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "cargando lista persistida")
	}

	result := &AggregateResult{
		Records: make([]*domain.SubdomainRecord, 0, len(existing)),
	}
	index := make(map[string]*domain.SubdomainRecord, len(existing))

	// Entradas de ejecuciones anteriores conservan su posición
	for _, name := range existing {
		if _, dup := index[name]; dup {
			continue
		}
		rec := domain.NewSubdomainRecord(name, "")
		rec.Known = true
		index[name] = rec
		result.Records = append(result.Records, rec)
	}

	// Orden fijo por prioridad de herramienta, no por finalización
	for _, tool := range tools {
		inv, ok := invocations[tool.Name()]
		if !ok {
			continue
		}

		for _, line := range inv.Lines {
			name, ok := validator.NormalizeCandidate(line, target.Root)
			if !ok {
				// Vacías y comentarios no cuentan como malformadas
				trimmed := strings.TrimSpace(line)
				if trimmed == "" || strings.HasPrefix(trimmed, "#") {
					continue
				}
				result.Skipped++
				a.logger.Debug("candidate discarded",
					"target", target.Root,
					"tool", inv.Tool,
					"line", line,
				)
				continue
			}

			if rec, seen := index[name]; seen {
				rec.AddSource(inv.Tool)
				continue
			}

			rec := domain.NewSubdomainRecord(name, inv.Tool)
			index[name] = rec
			result.Records = append(result.Records, rec)
			result.NewNames = append(result.NewNames, name)
		}
	}

	if err := store.Append(result.NewNames); err != nil {
		return nil, errors.Wrap(err, "persistiendo lista agregada")
	}

	a.logger.Info("aggregation done",
		"target", target.Root,
		"total", len(result.Records),
		"new", len(result.NewNames),
		"skipped", result.Skipped,
	)

	return result, nil
}
