// Package common provides the shared subprocess runner for all
// external tool adapters.
package common

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
)

// RunSpec describe una invocación de binario externo.
type RunSpec struct {
	// Tool nombre lógico para logs y provenance
	Tool string

	// Target dominio objetivo
	Target domain.Target

	// Binary path del ejecutable (ya resuelto via LookPath)
	Binary string

	// Args argumentos ya renderizados
	Args []string

	// Stdin entrada opcional (lista de candidatos para probes)
	Stdin io.Reader

	// Timeout presupuesto de tiempo (0 = sin límite propio)
	Timeout time.Duration
}

// Runner ejecuta binarios externos capturando stdout como líneas UTF-8.
// No comparte estado entre invocaciones concurrentes: cada Run opera
// sobre su propio cmd y sus propios pipes.
type Runner struct {
	logger logx.Logger
}

// NewRunner crea un runner de subprocesos.
func NewRunner(logger logx.Logger) *Runner {
	return &Runner{logger: logger.With("component", "runner")}
}

// Run ejecuta el binario y clasifica el resultado. Nunca deja escapar
// un fallo: una herramienta rota simplemente aporta cero líneas y un
// Outcome distinto de success; el caller decide cómo reaccionar.
func (r *Runner) Run(ctx context.Context, spec RunSpec) *domain.ToolInvocation {
	inv := &domain.ToolInvocation{
		Tool:      spec.Tool,
		Target:    spec.Target.Root,
		StartedAt: time.Now(),
		Outcome:   domain.OutcomeSuccess,
		Lines:     []string{},
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if spec.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	r.logger.Debug("executing tool",
		"tool", spec.Tool,
		"target", spec.Target.Root,
		"binary", spec.Binary,
		"args", spec.Args,
		"timeout", spec.Timeout.String(),
	)

	cmd := exec.CommandContext(runCtx, spec.Binary, spec.Args...)
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}

	// SIGTERM al expirar el contexto; kill forzado si no muere en 5s
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return r.finish(inv, domain.OutcomeNonZeroExit, -1, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return r.finish(inv, domain.OutcomeNonZeroExit, -1, err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return r.finish(inv, domain.OutcomeNotFound, -1, err)
		}
		return r.finish(inv, domain.OutcomeNonZeroExit, -1, err)
	}

	// Drenar stderr en background para que el proceso no se bloquee
	var stderrBytes []byte
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()
		stderrBytes, _ = io.ReadAll(stderr)
	}()

	// Capturar stdout línea a línea; buffer grande para salidas largas
	scanner := bufio.NewScanner(stdout)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		inv.Lines = append(inv.Lines, scanner.Text())
	}
	if scanErr := scanner.Err(); scanErr != nil {
		r.logger.Warn("scanner error", "tool", spec.Tool, "error", scanErr.Error())
	}

	waitErr := cmd.Wait()
	stderrWg.Wait()

	if len(stderrBytes) > 0 {
		r.logger.Debug("tool stderr", "tool", spec.Tool, "output", string(stderrBytes))
	}

	// Clasificación del outcome
	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		return r.finish(inv, domain.OutcomeTimeout, exitCode(waitErr), runCtx.Err())

	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return r.finish(inv, domain.OutcomeNonZeroExit, exitErr.ExitCode(), waitErr)
		}
		return r.finish(inv, domain.OutcomeNonZeroExit, -1, waitErr)
	}

	inv.FinishedAt = time.Now()
	r.logger.Debug("tool completed",
		"tool", spec.Tool,
		"lines", len(inv.Lines),
		"duration_ms", inv.Duration().Milliseconds(),
	)

	return inv
}

// finish sella la invocación con su clasificación de fallo.
func (r *Runner) finish(inv *domain.ToolInvocation, outcome domain.ToolOutcome, code int, err error) *domain.ToolInvocation {
	inv.FinishedAt = time.Now()
	inv.Outcome = outcome
	inv.ExitCode = code
	if err != nil {
		inv.Err = err.Error()
	}

	r.logger.Warn("tool did not complete",
		"tool", inv.Tool,
		"target", inv.Target,
		"outcome", string(outcome),
		"exit_code", code,
		"lines_captured", len(inv.Lines),
	)

	return inv
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
