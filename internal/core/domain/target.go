// internal/core/domain/target.go
package domain

import (
	"fmt"

	"github.com/DavidJovino/deivao-recon/internal/platform/validator"
)

// Target representa el dominio raíz objetivo de una ejecución.
// Es inmutable una vez creado: la normalización ocurre en NewTarget.
type Target struct {
	// Root es el dominio normalizado (lowercase, sin scheme, sin punto final)
	Root string
}

// NewTarget normaliza y valida un dominio objetivo.
// Rechaza entradas vacías, con formato inválido o que sean solo un
// sufijo público ("com", "co.uk").
func NewTarget(raw string) (Target, error) {
	root := validator.NormalizeDomain(raw)
	if root == "" {
		return Target{}, ErrEmptyTarget
	}

	if !validator.IsDomain(root) {
		return Target{}, fmt.Errorf("%w: %s", ErrInvalidDomain, raw)
	}

	if !validator.IsRegistrable(root) {
		return Target{}, fmt.Errorf("%w: %s is a bare public suffix", ErrInvalidDomain, raw)
	}

	return Target{Root: root}, nil
}

// InScope verifica si un hostname pertenece al alcance del target:
// el propio root o cualquier subdominio de él.
func (t Target) InScope(host string) bool {
	if host == t.Root {
		return true
	}
	return len(host) > len(t.Root)+1 &&
		host[len(host)-len(t.Root)-1] == '.' &&
		host[len(host)-len(t.Root):] == t.Root
}

// String retorna el dominio raíz.
func (t Target) String() string {
	return t.Root
}
