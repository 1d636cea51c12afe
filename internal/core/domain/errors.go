// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Input errors (fatal para el batch completo)
	ErrEmptyTarget     = errors.New("target cannot be empty")
	ErrInvalidDomain   = errors.New("invalid domain format")
	ErrInputUnreadable = errors.New("target list missing or unreadable")

	// Tool errors (recuperables: la herramienta aporta cero resultados)
	ErrToolNotFound      = errors.New("tool binary not found")
	ErrToolTimeout       = errors.New("tool execution timed out")
	ErrToolFailed        = errors.New("tool exited with error")
	ErrNoToolsAvailable  = errors.New("no enumeration tools available")
	ErrToolNotRegistered = errors.New("tool not registered")

	// Aggregation errors (recuperables: la línea se descarta)
	ErrMalformedCandidate = errors.New("malformed candidate line")

	// Probe errors (recuperables: el host queda inactive/unknown)
	ErrProbeUnavailable = errors.New("no liveness prober available")

	// Report errors (fatales solo para el reporte de ese target)
	ErrReportWrite       = errors.New("report write failed")
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
