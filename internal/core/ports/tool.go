// internal/core/ports/tool.go
package ports

import (
	"context"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
)

// Tool es el port primario para las herramientas externas de
// enumeración. Cada adapter envuelve un binario CLI (amass, subfinder,
// assetfinder o un comando genérico declarado por config).
type Tool interface {
	// Name retorna el nombre único de la herramienta
	Name() string

	// Priority retorna la prioridad de ejecución y de agregación
	// (mayor = más prioritario)
	Priority() int

	// Run ejecuta la herramienta contra el target y retorna la
	// invocación capturada. Nunca retorna error: cualquier fallo
	// (binario ausente, exit code, timeout) queda clasificado en el
	// Outcome de la invocación y la herramienta aporta cero líneas.
	Run(ctx context.Context, target domain.Target) *domain.ToolInvocation
}

// Prober es el port para el filtrado de liveness sobre la lista
// agregada de un target.
type Prober interface {
	// Name retorna el nombre del prober (para logs y provenance)
	Name() string

	// Probe clasifica cada subdominio como active, inactive o unknown.
	// El fallo de un subconjunto de hosts nunca aborta el resto: esos
	// hosts quedan unknown. Retorna error solo si el probe completo
	// no pudo ejecutarse.
	Probe(ctx context.Context, target domain.Target, subdomains []string) ([]domain.LivenessResult, error)
}
