// Package output implements the on-disk workspace layout:
//
//	<base>/<target>/recon/<tool>.txt              raw per-tool output
//	<base>/<target>/recon/all_subdomains.txt      append-only aggregate
//	<base>/<target>/recon/active_subdomains.txt   live subset per run
//	<base>/<target>/reports/...                   report artifacts
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/store"
)

const (
	reconDirName   = "recon"
	reportsDirName = "reports"

	aggregateFile = "all_subdomains.txt"
	activeFile    = "active_subdomains.txt"
)

// Workspace implementa ports.Workspace bajo un directorio base
// explícito: ningún componente conoce paths fuera de aquí.
type Workspace struct {
	base string

	// stores por path: un target siempre recibe la misma instancia,
	// compartiendo su mutex de escritor único
	mu     sync.Mutex
	stores map[string]*store.LineStore
}

// NewWorkspace crea el workspace sobre el directorio base configurado.
func NewWorkspace(base string) *Workspace {
	return &Workspace{
		base:   base,
		stores: make(map[string]*store.LineStore),
	}
}

// Base retorna el directorio base.
func (w *Workspace) Base() string {
	return w.base
}

// ReconDir asegura y retorna <base>/<target>/recon.
func (w *Workspace) ReconDir(target domain.Target) (string, error) {
	return w.ensureDir(target, reconDirName)
}

// ReportsDir asegura y retorna <base>/<target>/reports.
func (w *Workspace) ReportsDir(target domain.Target) (string, error) {
	return w.ensureDir(target, reportsDirName)
}

// WriteToolOutput persiste la salida cruda de una herramienta en
// recon/<tool>.txt. Se reescribe por ejecución: el histórico dedupe
// vive en all_subdomains.txt, no aquí.
func (w *Workspace) WriteToolOutput(target domain.Target, tool string, lines []string) (string, error) {
	dir, err := w.ReconDir(target)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, sanitizeFileName(tool)+".txt")
	if err := w.storeFor(path).Replace(lines); err != nil {
		return "", fmt.Errorf("failed to write tool output for %s: %w", tool, err)
	}
	return path, nil
}

// AggregateStore retorna el store append-only del target.
func (w *Workspace) AggregateStore(target domain.Target) (ports.Store, error) {
	dir, err := w.ReconDir(target)
	if err != nil {
		return nil, err
	}
	return w.storeFor(filepath.Join(dir, aggregateFile)), nil
}

// ActiveStore retorna el store del subset activo del target.
func (w *Workspace) ActiveStore(target domain.Target) (ports.Store, error) {
	dir, err := w.ReconDir(target)
	if err != nil {
		return nil, err
	}
	return w.storeFor(filepath.Join(dir, activeFile)), nil
}

// ensureDir crea <base>/<target>/<sub> si no existe.
func (w *Workspace) ensureDir(target domain.Target, sub string) (string, error) {
	dir := filepath.Join(w.base, target.Root, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s directory for %s: %w", sub, target.Root, err)
	}
	return dir, nil
}

// storeFor retorna el LineStore canónico de un path.
func (w *Workspace) storeFor(path string) *store.LineStore {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.stores[path]; ok {
		return s
	}
	s := store.New(path)
	w.stores[path] = s
	return s
}

// sanitizeFileName limita nombres de herramienta a caracteres seguros
// para el filesystem.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}
