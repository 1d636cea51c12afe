// Package store provides an append-only, line-oriented file store used
// to persist the aggregated subdomain list per target.
//
// Writes go through a temp file plus atomic rename under a per-store
// mutex: single-writer discipline keeps the dedup/ordering invariant
// intact if an outer worker pool across targets is ever introduced.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LineStore es un almacén de líneas append-only respaldado por un
// archivo plano. El orden de las líneas es el orden de inserción.
type LineStore struct {
	mu   sync.Mutex
	path string
}

// New crea un LineStore sobre el path dado. El archivo no se crea
// hasta el primer write.
func New(path string) *LineStore {
	return &LineStore{path: path}
}

// Path retorna el path del archivo subyacente.
func (s *LineStore) Path() string {
	return s.path
}

// Load lee todas las líneas persistidas, preservando el orden.
// Un archivo inexistente no es error: retorna lista vacía.
func (s *LineStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLines()
}

// Append añade las líneas que aún no están en el archivo, preservando
// el orden de llegada. Re-aplicar líneas ya vistas es un no-op a nivel
// de bytes: si no hay nada nuevo, el archivo no se reescribe.
func (s *LineStore) Append(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readLines()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l] = true
	}

	merged := existing
	added := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		merged = append(merged, l)
		added++
	}

	if added == 0 {
		return nil
	}

	return s.writeAtomic(merged)
}

// Replace reescribe el archivo completo con las líneas dadas.
// Usado para listas derivadas que se regeneran por ejecución
// (active_subdomains.txt); el archivo se crea aunque esté vacío.
func (s *LineStore) Replace(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeAtomic(lines)
}

// readLines lee el archivo sin tomar el lock (caller lo sostiene).
func (s *LineStore) readLines() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open store %s: %w", s.path, err)
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	return lines, nil
}

// writeAtomic escribe temp + rename para que los lectores nunca vean
// un archivo parcial.
func (s *LineStore) writeAtomic(lines []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write store: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}

	return nil
}
