// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"
)

// Notifier es el port para notificaciones de eventos del sistema.
// Implementa el patrón Observer para desacoplar la lógica de negocio
// de los mecanismos de notificación (webhooks, Slack, etc.).
type Notifier interface {
	// Notify envía una notificación para un evento
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento del sistema.
type Event struct {
	// Type tipo de evento
	Type EventType

	// Timestamp momento del evento
	Timestamp time.Time

	// RunID identificador del batch
	RunID string

	// Target objetivo relacionado (vacío para eventos de batch)
	Target string

	// Data datos específicos del evento
	Data interface{}

	// Severity severidad del evento
	Severity EventSeverity
}

// EventType define los tipos de eventos del sistema.
type EventType string

const (
	// Batch events
	EventTypeBatchStarted   EventType = "batch.started"
	EventTypeBatchCompleted EventType = "batch.completed"

	// Target events
	EventTypeTargetStarted   EventType = "target.started"
	EventTypeTargetCompleted EventType = "target.completed"
	EventTypeTargetFailed    EventType = "target.failed"

	// System events
	EventTypeSystemError   EventType = "system.error"
	EventTypeSystemWarning EventType = "system.warning"
)

// EventSeverity define la severidad de un evento.
type EventSeverity string

const (
	EventSeverityInfo    EventSeverity = "info"
	EventSeverityWarning EventSeverity = "warning"
	EventSeverityError   EventSeverity = "error"
)

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, runID, target string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		RunID:     runID,
		Target:    target,
		Data:      data,
		Severity:  EventSeverityInfo,
	}
}

// BatchStartedEvent datos para evento de inicio de batch.
type BatchStartedEvent struct {
	Targets []string
	Tools   []string
}

// TargetCompletedEvent datos para evento de finalización de target.
type TargetCompletedEvent struct {
	Status   string
	Found    int
	Active   int
	Duration time.Duration
}

// BatchCompletedEvent datos para evento de finalización de batch.
type BatchCompletedEvent struct {
	TargetsAttempted int
	TargetsDegraded  int
	TargetsFailed    int
	Duration         time.Duration
}
