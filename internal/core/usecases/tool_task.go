// internal/core/usecases/tool_task.go
package usecases

import (
	"context"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
)

// toolTask adapta una herramienta de enumeración al worker pool.
// Captura el contexto del pipeline para que la cancelación por señal
// alcance al subprocess aunque el pool tenga su propio contexto.
type toolTask struct {
	tool   ports.Tool
	target domain.Target
	ctx    context.Context

	// result queda poblado tras Execute
	result *domain.ToolInvocation
}

func newToolTask(ctx context.Context, tool ports.Tool, target domain.Target) *toolTask {
	return &toolTask{
		tool:   tool,
		target: target,
		ctx:    ctx,
	}
}

// Execute corre la herramienta. Nunca retorna error: cualquier fallo
// queda clasificado en el Outcome de la invocación.
func (t *toolTask) Execute(_ context.Context) error {
	t.result = t.tool.Run(t.ctx, t.target)
	return nil
}

// Priority retorna la prioridad de registro de la herramienta.
func (t *toolTask) Priority() int { return t.tool.Priority() }

// Name retorna el nombre de la herramienta.
func (t *toolTask) Name() string { return t.tool.Name() }
