// internal/core/domain/summary.go
package domain

import "time"

// TargetStatus clasifica el resultado de procesar un target.
type TargetStatus string

const (
	// TargetCompleted: todos los stages terminaron sin advertencias
	TargetCompleted TargetStatus = "completed"

	// TargetDegraded: algún stage falló parcialmente pero hubo reporte
	TargetDegraded TargetStatus = "degraded"

	// TargetFailed: el target no produjo reporte
	TargetFailed TargetStatus = "failed"

	// TargetSkipped: línea de input inválida, nunca se procesó
	TargetSkipped TargetStatus = "skipped"
)

// TargetSummary es el estado final de un target dentro del batch.
type TargetSummary struct {
	Target         string       `json:"target"`
	Status         TargetStatus `json:"status"`
	Found          int          `json:"found"`
	NewFound       int          `json:"new_found"`
	Active         int          `json:"active"`
	Inactive       int          `json:"inactive"`
	Unknown        int          `json:"unknown"`
	DegradedStages []string     `json:"degraded_stages,omitempty"`
	ArtifactPaths  []string     `json:"artifacts,omitempty"`
	Duration       time.Duration `json:"duration"`
	Err            string       `json:"error,omitempty"`
}

// BatchSummary es el resultado de todo el batch: cada target aparece
// exactamente una vez, haya terminado como haya terminado.
type BatchSummary struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Targets    []TargetSummary `json:"targets"`
}

// NewBatchSummary crea un resumen de batch vacío.
func NewBatchSummary(runID string) *BatchSummary {
	return &BatchSummary{
		RunID:     runID,
		StartedAt: time.Now(),
		Targets:   []TargetSummary{},
	}
}

// Add registra el resumen de un target.
func (b *BatchSummary) Add(s TargetSummary) {
	b.Targets = append(b.Targets, s)
}

// Finalize marca el batch como completado.
func (b *BatchSummary) Finalize() {
	b.FinishedAt = time.Now()
}

// Duration retorna la duración total del batch.
func (b *BatchSummary) Duration() time.Duration {
	end := b.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(b.StartedAt)
}

// CountByStatus agrupa targets por status final.
func (b *BatchSummary) CountByStatus() map[TargetStatus]int {
	counts := make(map[TargetStatus]int, 4)
	for _, t := range b.Targets {
		counts[t.Status]++
	}
	return counts
}

// Attempted retorna cuántos targets fueron realmente procesados
// (todo excepto skipped).
func (b *BatchSummary) Attempted() int {
	n := 0
	for _, t := range b.Targets {
		if t.Status != TargetSkipped {
			n++
		}
	}
	return n
}
