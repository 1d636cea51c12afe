// internal/core/domain/invocation.go
package domain

import "time"

// ToolOutcome clasifica el resultado de una invocación de herramienta externa.
type ToolOutcome string

const (
	OutcomeSuccess     ToolOutcome = "success"
	OutcomeTimeout     ToolOutcome = "timeout"
	OutcomeNonZeroExit ToolOutcome = "nonzero_exit"
	OutcomeNotFound    ToolOutcome = "not_found"
)

// IsValid verifica que el outcome sea uno de los valores conocidos.
func (o ToolOutcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeTimeout, OutcomeNonZeroExit, OutcomeNotFound:
		return true
	}
	return false
}

// Failed indica si la invocación no produjo una salida completa.
func (o ToolOutcome) Failed() bool {
	return o != OutcomeSuccess
}

// ToolInvocation captura la ejecución de una herramienta externa contra
// un target. Lo construye el runner y es inmutable una vez finalizado.
type ToolInvocation struct {
	Tool       string      `json:"tool"`
	Target     string      `json:"target"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Outcome    ToolOutcome `json:"outcome"`
	ExitCode   int         `json:"exit_code"`
	Lines      []string    `json:"-"`
	Err        string      `json:"error,omitempty"`
}

// Duration retorna el tiempo total de ejecución.
func (i *ToolInvocation) Duration() time.Duration {
	return i.FinishedAt.Sub(i.StartedAt)
}

// LineCount retorna el número de líneas capturadas de stdout.
func (i *ToolInvocation) LineCount() int {
	return len(i.Lines)
}
