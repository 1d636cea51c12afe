// internal/probe/native.go
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/httpclient"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
)

// NativeProber es el fallback in-process cuando el binario httpx no
// está instalado: prueba https y luego http por host con concurrencia
// acotada y rate limiting. Cualquier respuesta HTTP, sin importar el
// status code, marca el host como activo.
type NativeProber struct {
	threads int
	timeout time.Duration
	limiter *rate.Limiter
	client  *httpclient.Client
	logger  logx.Logger
}

// NewNativeProber construye el prober nativo.
func NewNativeProber(threads int, perHostTimeout time.Duration, logger logx.Logger) *NativeProber {
	if threads < 1 {
		threads = 10
	}
	if perHostTimeout <= 0 {
		perHostTimeout = 10 * time.Second
	}

	return &NativeProber{
		threads: threads,
		timeout: perHostTimeout,
		// 2 req/s por worker de media; burst = un frente completo
		limiter: rate.NewLimiter(rate.Limit(threads*2), threads),
		client: httpclient.New(httpclient.Config{
			Timeout:         perHostTimeout,
			FollowRedirects: false,
		}),
		logger: logger.With("prober", "native"),
	}
}

// Name retorna el nombre del prober.
func (p *NativeProber) Name() string {
	return "native"
}

// Probe clasifica cada subdominio con un pool acotado de workers.
// El fallo de un host nunca aborta el resto.
func (p *NativeProber) Probe(ctx context.Context, target domain.Target, subdomains []string) ([]domain.LivenessResult, error) {
	if len(subdomains) == 0 {
		return []domain.LivenessResult{}, nil
	}

	p.logger.Info("probing hosts",
		"target", target.Root,
		"hosts", len(subdomains),
		"threads", p.threads,
		"timeout", p.timeout.String(),
	)

	results := make([]domain.LivenessResult, len(subdomains))
	sem := make(chan struct{}, p.threads)
	var wg sync.WaitGroup

	for i, sub := range subdomains {
		wg.Add(1)
		go func(idx int, host string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := p.limiter.Wait(ctx); err != nil {
				results[idx] = domain.LivenessResult{
					Subdomain: host,
					Status:    domain.LivenessUnknown,
					Err:       err.Error(),
				}
				return
			}

			results[idx] = p.probeHost(ctx, host)
		}(i, sub)
	}

	wg.Wait()

	counts := domain.CountByStatus(results)
	p.logger.Info("probe finished",
		"target", target.Root,
		"active", counts[domain.LivenessActive],
		"inactive", counts[domain.LivenessInactive],
		"unknown", counts[domain.LivenessUnknown],
	)

	return results, nil
}

// probeHost intenta https y luego http contra un host.
func (p *NativeProber) probeHost(ctx context.Context, host string) domain.LivenessResult {
	var statuses [2]domain.LivenessStatus
	var lastErr error

	for i, scheme := range [2]string{"https", "http"} {
		hostCtx, cancel := context.WithTimeout(ctx, p.timeout)
		start := time.Now()
		resp, err := p.client.Get(hostCtx, fmt.Sprintf("%s://%s", scheme, host))
		elapsed := time.Since(start)
		cancel()

		if err == nil {
			resp.Body.Close()
			return domain.LivenessResult{
				Subdomain:  host,
				Status:     domain.LivenessActive,
				Scheme:     scheme,
				StatusCode: resp.StatusCode,
				Elapsed:    elapsed,
			}
		}

		statuses[i] = classifyProbeError(err)
		lastErr = err
	}

	// inactive solo cuando ambos schemes fallaron de forma concluyente
	// (DNS o conexión rechazada); cualquier timeout deja unknown
	status := domain.LivenessUnknown
	if statuses[0] == domain.LivenessInactive && statuses[1] == domain.LivenessInactive {
		status = domain.LivenessInactive
	}

	return domain.LivenessResult{
		Subdomain: host,
		Status:    status,
		Err:       strippedError(lastErr),
	}
}

// classifyProbeError mapea errores de red a la taxonomía de liveness:
// fallo DNS o conexión rechazada = inactive; timeout o cancelación =
// unknown; el resto = unknown.
func classifyProbeError(err error) domain.LivenessStatus {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return domain.LivenessUnknown
		}
		return domain.LivenessInactive
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return domain.LivenessInactive
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.LivenessUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.LivenessUnknown
	}

	return domain.LivenessUnknown
}

// strippedError compacta el error para el metadata del resultado.
func strippedError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	// "Get \"https://host\": dial tcp ...": la URL ya está en Subdomain
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
