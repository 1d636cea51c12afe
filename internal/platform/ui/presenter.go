// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// Presenter define la interfaz para presentar el progreso del pipeline
// de reconocimiento en la terminal. El orchestrator solo habla con esta
// interfaz; la implementación concreta depende del modo de ejecución.
type Presenter interface {
	// Banner muestra el header inicial con la configuración del batch
	Banner(info RunInfo)

	// Availability muestra la tabla de herramientas detectadas en PATH
	Availability(tools []ToolStatus)

	// TargetStarted notifica el inicio del pipeline para un target
	TargetStarted(index, total int, target string)

	// ToolFinished notifica el resultado de una herramienta de enumeración
	ToolFinished(tool string, status Status, duration time.Duration, lines int)

	// StageNote muestra una línea de progreso de stage (agregación, probing)
	StageNote(msg string)

	// TargetFinished muestra el resumen de un target
	TargetFinished(result TargetResult)

	// Summary muestra las estadísticas finales del batch
	Summary(batch BatchResult)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene la configuración mostrada al inicio del batch.
type RunInfo struct {
	Targets   int
	Tools     []string
	Workers   int
	Threads   int
	OutputDir string
	Formats   []string
}

// ToolStatus es una fila de la tabla de disponibilidad.
type ToolStatus struct {
	Name      string
	Available bool

	// Path del binario cuando está disponible
	Path string

	// Hint de instalación o alternativa cuando falta
	Hint string
}

// TargetResult es el resumen por target mostrado al terminar su pipeline.
type TargetResult struct {
	Target   string
	Status   string
	Found    int
	NewFound int
	Active   int
	Duration time.Duration

	// Degraded lista los stages que fallaron sin abortar el target
	Degraded []string

	// Err describe la falla cuando Status es failed o skipped
	Err string
}

// BatchResult son las estadísticas finales del batch completo.
type BatchResult struct {
	Completed int
	Degraded  int
	Failed    int
	Skipped   int
	Duration  time.Duration
}
