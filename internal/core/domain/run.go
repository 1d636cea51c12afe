// internal/core/domain/run.go
package domain

import (
	"fmt"
	"time"
)

// PipelineRun es el contexto efímero de un target: acumula los
// resultados de cada stage y se descarta tras generar el reporte.
// Los artifacts en disco persisten.
type PipelineRun struct {
	// ID identificador único de la ejecución (compartido por el batch)
	ID string

	// Target objetivo de esta ejecución
	Target Target

	// Invocations resultado crudo de cada herramienta de enumeración
	Invocations map[string]*ToolInvocation

	// Records lista agregada, deduplicada y con provenance
	Records []*SubdomainRecord

	// Liveness veredicto del probe por subdominio
	Liveness []LivenessResult

	// Artifacts reportes escritos a disco
	Artifacts []ReportArtifact

	// Warnings advertencias no críticas (stages degradados, líneas descartadas)
	Warnings []Warning

	// Errors errores ocurridos durante la ejecución
	Errors []Error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Warning representa una advertencia no crítica durante la ejecución.
type Warning struct {
	Stage     string
	Message   string
	Timestamp time.Time
}

// Error representa un error ocurrido durante la ejecución.
type Error struct {
	Stage     string
	Message   string
	Fatal     bool
	Timestamp time.Time
}

// NewPipelineRun crea el contexto de ejecución para un target.
func NewPipelineRun(id string, target Target) *PipelineRun {
	return &PipelineRun{
		ID:          id,
		Target:      target,
		Invocations: make(map[string]*ToolInvocation),
		Records:     []*SubdomainRecord{},
		Liveness:    []LivenessResult{},
		Artifacts:   []ReportArtifact{},
		Warnings:    []Warning{},
		Errors:      []Error{},
		StartedAt:   time.Now(),
	}
}

// AddWarning añade una advertencia al run.
func (r *PipelineRun) AddWarning(stage, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// AddError añade un error al run.
func (r *PipelineRun) AddError(stage, message string, fatal bool) {
	r.Errors = append(r.Errors, Error{
		Stage:     stage,
		Message:   message,
		Fatal:     fatal,
		Timestamp: time.Now(),
	})
}

// Finalize marca la ejecución como completada.
func (r *PipelineRun) Finalize() {
	r.FinishedAt = time.Now()
}

// Duration retorna el tiempo total de la ejecución.
func (r *PipelineRun) Duration() time.Duration {
	end := r.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.StartedAt)
}

// DegradedStages retorna los nombres de stages con advertencias o errores.
func (r *PipelineRun) DegradedStages() []string {
	seen := make(map[string]bool)
	stages := []string{}
	for _, w := range r.Warnings {
		if !seen[w.Stage] {
			seen[w.Stage] = true
			stages = append(stages, w.Stage)
		}
	}
	for _, e := range r.Errors {
		if !seen[e.Stage] {
			seen[e.Stage] = true
			stages = append(stages, e.Stage)
		}
	}
	return stages
}

// WarningMessages retorna los mensajes de advertencia formateados.
func (r *PipelineRun) WarningMessages() []string {
	msgs := make([]string, 0, len(r.Warnings)+len(r.Errors))
	for _, w := range r.Warnings {
		msgs = append(msgs, fmt.Sprintf("[%s] %s", w.Stage, w.Message))
	}
	for _, e := range r.Errors {
		msgs = append(msgs, fmt.Sprintf("[%s] %s", e.Stage, e.Message))
	}
	return msgs
}

// Summary retorna una representación legible del run.
func (r *PipelineRun) Summary() string {
	return fmt.Sprintf(
		"PipelineRun{target=%s, found=%d, warnings=%d, errors=%d, duration=%s}",
		r.Target.Root,
		len(r.Records),
		len(r.Warnings),
		len(r.Errors),
		r.Duration(),
	)
}
