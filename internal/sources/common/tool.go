// internal/sources/common/tool.go
package common

import (
	"context"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
)

// CLITool es la implementación estándar de ports.Tool: un descriptor
// declarativo ejecutado por el runner compartido. Las herramientas
// concretas (amass, subfinder, assetfinder, genéricas) solo difieren
// en su descriptor.
type CLITool struct {
	desc   registry.ToolDescriptor
	runner *Runner
}

// NewCLITool construye la herramienta a partir de su descriptor resuelto.
func NewCLITool(desc registry.ToolDescriptor, logger logx.Logger) *CLITool {
	return &CLITool{
		desc:   desc,
		runner: NewRunner(logger.With("tool", desc.Name)),
	}
}

// Name retorna el nombre de la herramienta.
func (t *CLITool) Name() string {
	return t.desc.Name
}

// Priority retorna la prioridad declarada en el descriptor.
func (t *CLITool) Priority() int {
	return t.desc.Priority
}

// Run ejecuta el binario contra el target con el timeout del descriptor.
func (t *CLITool) Run(ctx context.Context, target domain.Target) *domain.ToolInvocation {
	return t.runner.Run(ctx, RunSpec{
		Tool:    t.desc.Name,
		Target:  target,
		Binary:  t.desc.Binary,
		Args:    t.desc.RenderArgs(target.Root),
		Timeout: t.desc.Timeout(),
	})
}
