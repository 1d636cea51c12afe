// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
)

// fakeTool emite líneas fijas o un outcome de fallo, sin subprocess.
type fakeTool struct {
	name     string
	priority int
	lines    []string
	outcome  domain.ToolOutcome
	delay    time.Duration
}

func (f *fakeTool) Name() string  { return f.name }
func (f *fakeTool) Priority() int { return f.priority }

func (f *fakeTool) Run(ctx context.Context, target domain.Target) *domain.ToolInvocation {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}

	outcome := f.outcome
	if outcome == "" {
		outcome = domain.OutcomeSuccess
	}

	inv := &domain.ToolInvocation{
		Tool:       f.name,
		Target:     target.Root,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Outcome:    outcome,
		Lines:      []string{},
	}
	if !outcome.Failed() {
		inv.Lines = append(inv.Lines, f.lines...)
	}
	if outcome.Failed() {
		inv.Err = fmt.Sprintf("fake %s", outcome)
	}
	return inv
}

// recordingNotifier registra los eventos entregados, con latencia
// opcional para simular un webhook lento.
type recordingNotifier struct {
	mu     sync.Mutex
	delay  time.Duration
	events []ports.EventType
}

func (n *recordingNotifier) Notify(ctx context.Context, event ports.Event) error {
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event.Type)
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) delivered() []ports.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.EventType{}, n.events...)
}

// fakeProber clasifica por mapa; lo no listado queda inactive.
type fakeProber struct {
	statuses map[string]domain.LivenessStatus
	err      error
	calls    int
}

func (f *fakeProber) Name() string { return "fake-prober" }

func (f *fakeProber) Probe(ctx context.Context, target domain.Target, subdomains []string) ([]domain.LivenessResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	results := make([]domain.LivenessResult, 0, len(subdomains))
	for _, sub := range subdomains {
		status, ok := f.statuses[sub]
		if !ok {
			status = domain.LivenessInactive
		}
		r := domain.LivenessResult{Subdomain: sub, Status: status}
		if status == domain.LivenessActive {
			r.Scheme = "https"
			r.StatusCode = 200
		}
		results = append(results, r)
	}
	return results, nil
}
