// Package probe implements liveness filtering over the aggregated
// subdomain list: the httpx CLI when installed, a native in-process
// prober otherwise. Both honor the same classification contract.
package probe

import (
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
)

// Config parametriza la selección del prober.
type Config struct {
	// Threads concurrencia por host
	Threads int

	// PerHostTimeout presupuesto por host del prober nativo
	PerHostTimeout time.Duration
}

// New selecciona el prober: httpx si el binario está disponible,
// fallback nativo si no. El fallback hace probing real; los hosts no
// verificados nunca se declaran activos.
func New(cfg Config, logger logx.Logger) ports.Prober {
	desc, ok := registry.Global().Descriptor("httpx")
	if !ok {
		desc = Descriptor()
	}

	hx := NewHTTPXProber(desc, cfg.Threads, logger)
	if hx.Available() {
		return hx
	}

	logger.Warn("httpx binary not found, falling back to native prober",
		"install", desc.InstallHint(),
	)
	return NewNativeProber(cfg.Threads, cfg.PerHostTimeout, logger)
}
