// internal/core/usecases/coordinator.go
package usecases

import (
	"context"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/workerpool"
)

// StageCoordinator ejecuta las herramientas de enumeración de un target
// en un worker pool acotado con scheduling por prioridad, y persiste la
// salida cruda de cada una. Espera a que TODAS terminen o agoten su
// timeout antes de retornar: completitud sobre latencia.
type StageCoordinator struct {
	workspace ports.Workspace
	workers   int
	logger    logx.Logger
}

// NewStageCoordinator crea el coordinador de enumeración.
func NewStageCoordinator(workspace ports.Workspace, workers int, logger logx.Logger) *StageCoordinator {
	if workers < 1 {
		workers = 1
	}
	return &StageCoordinator{
		workspace: workspace,
		workers:   workers,
		logger:    logger.With("component", "coordinator"),
	}
}

// Enumerate corre todas las herramientas contra el target y retorna la
// invocación de cada una, indexada por nombre. El orden de finalización
// no afecta el resultado: la agregación itera por prioridad fija.
func (c *StageCoordinator) Enumerate(ctx context.Context, target domain.Target, tools []ports.Tool) map[string]*domain.ToolInvocation {
	invocations := make(map[string]*domain.ToolInvocation, len(tools))
	if len(tools) == 0 {
		return invocations
	}

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers:   c.workers,
		Scheduler: workerpool.NewPriorityScheduler(),
		Logger:    c.logger,
	})
	pool.Start()
	defer pool.Stop()

	tasks := make([]workerpool.Task, 0, len(tools))
	for _, tool := range tools {
		tasks = append(tasks, newToolTask(ctx, tool, target))
	}

	for _, result := range pool.Submit(tasks) {
		task, ok := result.Task.(*toolTask)
		if !ok || task.result == nil {
			continue
		}

		inv := task.result
		invocations[inv.Tool] = inv

		c.logger.Info("tool finished",
			"target", target.Root,
			"tool", inv.Tool,
			"outcome", string(inv.Outcome),
			"lines", inv.LineCount(),
			"duration_ms", inv.Duration().Milliseconds(),
		)

		// Persistir salida cruda aunque la herramienta haya fallado:
		// las líneas parciales capturadas antes del timeout cuentan
		if path, err := c.workspace.WriteToolOutput(target, inv.Tool, inv.Lines); err != nil {
			c.logger.Warn("failed to persist tool output",
				"target", target.Root,
				"tool", inv.Tool,
				"error", err.Error(),
			)
		} else {
			c.logger.Debug("tool output written", "path", path, "lines", inv.LineCount())
		}
	}

	return invocations
}
