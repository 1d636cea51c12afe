// internal/probe/httpx.go
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/platform/validator"
	"github.com/DavidJovino/deivao-recon/internal/sources/common"
)

// Descriptor retorna la declaración por defecto del probe httpx.
// Recibe la lista de candidatos por stdin y emite una URL por línea
// para cada host que respondió.
func Descriptor() registry.ToolDescriptor {
	return registry.ToolDescriptor{
		Name:          "httpx",
		Binary:        "httpx",
		Args:          []string{"-silent"},
		Kind:          registry.KindProbe,
		Priority:      0,
		TimeoutS:      900,
		Stdin:         true,
		Package:       "github.com/projectdiscovery/httpx/cmd/httpx",
		InstallMethod: "go install",
		Description:   "HTTP liveness probing over discovered subdomains",
	}
}

// El descriptor se registra para que --check-only y --tools-config lo
// cubran igual que a las herramientas de enumeración.
func init() {
	if err := registry.Global().AddDescriptor(Descriptor()); err != nil {
		logx.New().Warn("failed to register httpx descriptor", "error", err.Error())
	}
}

// HTTPXProber implementa ports.Prober sobre el binario httpx.
type HTTPXProber struct {
	desc    registry.ToolDescriptor
	threads int
	runner  *common.Runner
	logger  logx.Logger
}

// NewHTTPXProber construye el prober CLI.
func NewHTTPXProber(desc registry.ToolDescriptor, threads int, logger logx.Logger) *HTTPXProber {
	if threads < 1 {
		threads = 10
	}
	return &HTTPXProber{
		desc:    desc,
		threads: threads,
		runner:  common.NewRunner(logger.With("prober", "httpx")),
		logger:  logger.With("prober", "httpx"),
	}
}

// Name retorna el nombre del prober.
func (p *HTTPXProber) Name() string {
	return "httpx"
}

// Available verifica que el binario esté en PATH.
func (p *HTTPXProber) Available() bool {
	_, err := exec.LookPath(p.desc.Binary)
	return err == nil
}

// Probe alimenta httpx con la lista de candidatos por stdin y clasifica:
// host en la salida = active; ausente con httpx exitoso = inactive;
// ausente con httpx caído o expirado = unknown (solo el subconjunto
// no confirmado, nunca aborta el resto).
func (p *HTTPXProber) Probe(ctx context.Context, target domain.Target, subdomains []string) ([]domain.LivenessResult, error) {
	if len(subdomains) == 0 {
		return []domain.LivenessResult{}, nil
	}

	args := append([]string{}, p.desc.Args...)
	args = append(args, "-threads", strconv.Itoa(p.threads))

	inv := p.runner.Run(ctx, common.RunSpec{
		Tool:    p.desc.Name,
		Target:  target,
		Binary:  p.desc.Binary,
		Args:    args,
		Stdin:   strings.NewReader(strings.Join(subdomains, "\n") + "\n"),
		Timeout: p.desc.Timeout(),
	})

	if inv.Outcome == domain.OutcomeNotFound {
		return nil, fmt.Errorf("%w: httpx binary missing", domain.ErrProbeUnavailable)
	}

	// Hosts confirmados: httpx emite la URL completa del host vivo
	active := make(map[string]domain.LivenessResult, len(inv.Lines))
	for _, line := range inv.Lines {
		scheme := "https"
		if strings.HasPrefix(line, "http://") {
			scheme = "http"
		}
		host, ok := validator.NormalizeCandidate(line, target.Root)
		if !ok {
			continue
		}
		active[host] = domain.LivenessResult{
			Subdomain: host,
			Status:    domain.LivenessActive,
			Scheme:    scheme,
		}
	}

	// Los no confirmados dependen de si httpx terminó limpio
	missingStatus := domain.LivenessInactive
	missingErr := ""
	if inv.Outcome.Failed() {
		missingStatus = domain.LivenessUnknown
		missingErr = fmt.Sprintf("httpx %s", inv.Outcome)
		p.logger.Warn("httpx did not complete, unconfirmed hosts marked unknown",
			"target", target.Root,
			"outcome", string(inv.Outcome),
			"confirmed", len(active),
		)
	}

	results := make([]domain.LivenessResult, 0, len(subdomains))
	for _, sub := range subdomains {
		if r, ok := active[sub]; ok {
			results = append(results, r)
			continue
		}
		results = append(results, domain.LivenessResult{
			Subdomain: sub,
			Status:    missingStatus,
			Err:       missingErr,
		})
	}

	return results, nil
}
