// internal/core/domain/record.go
package domain

import "time"

// SubdomainRecord es un subdominio deduplicado con provenance.
// La identidad es el texto normalizado; Sources crece por AddSource
// y nunca se reduce.
type SubdomainRecord struct {
	// Name es el subdominio normalizado (identidad única por target)
	Name string `json:"name"`

	// Sources lista las herramientas que reportaron este subdominio
	Sources []string `json:"sources"`

	// FirstSeen momento del primer descubrimiento
	FirstSeen time.Time `json:"first_seen"`

	// Known marca entradas cargadas de la lista persistida de una
	// ejecución anterior (no cuentan como descubrimientos nuevos)
	Known bool `json:"known"`
}

// NewSubdomainRecord crea un record con su primera fuente.
func NewSubdomainRecord(name, source string) *SubdomainRecord {
	r := &SubdomainRecord{
		Name:      name,
		Sources:   []string{},
		FirstSeen: time.Now(),
	}
	if source != "" {
		r.Sources = append(r.Sources, source)
	}
	return r
}

// AddSource añade provenance sin duplicar. Append-only.
func (r *SubdomainRecord) AddSource(source string) {
	if source == "" {
		return
	}
	for _, s := range r.Sources {
		if s == source {
			return
		}
	}
	r.Sources = append(r.Sources, source)
}

// HasSource verifica si una herramienta reportó este subdominio.
func (r *SubdomainRecord) HasSource(source string) bool {
	for _, s := range r.Sources {
		if s == source {
			return true
		}
	}
	return false
}
