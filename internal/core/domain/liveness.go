// internal/core/domain/liveness.go
package domain

import "time"

// LivenessStatus clasifica la respuesta de red de un host.
type LivenessStatus string

const (
	// LivenessActive: cualquier respuesta HTTP(S), sin importar el status code
	LivenessActive LivenessStatus = "active"

	// LivenessInactive: conexión rechazada o fallo de DNS
	LivenessInactive LivenessStatus = "inactive"

	// LivenessUnknown: timeout o crash del probe para ese host
	LivenessUnknown LivenessStatus = "unknown"
)

// IsValid verifica que el status sea uno de los valores conocidos.
func (s LivenessStatus) IsValid() bool {
	switch s {
	case LivenessActive, LivenessInactive, LivenessUnknown:
		return true
	}
	return false
}

// LivenessResult es el veredicto del probe para un subdominio agregado.
// Solo existe para subdominios presentes en la lista deduplicada del target.
type LivenessResult struct {
	Subdomain string         `json:"subdomain"`
	Status    LivenessStatus `json:"status"`

	// Metadata del probe (vacía cuando el probe no llegó a responder)
	Scheme     string        `json:"scheme,omitempty"`
	StatusCode int           `json:"status_code,omitempty"`
	Elapsed    time.Duration `json:"elapsed,omitempty"`
	Err        string        `json:"error,omitempty"`
}

// CountByStatus agrupa resultados de liveness por status.
func CountByStatus(results []LivenessResult) map[LivenessStatus]int {
	counts := make(map[LivenessStatus]int, 3)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
