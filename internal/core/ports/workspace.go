// internal/core/ports/workspace.go
package ports

import (
	"github.com/DavidJovino/deivao-recon/internal/core/domain"
)

// Store es un almacén de líneas con orden estable. La implementación
// de plataforma usa un archivo plano con escritura atómica.
type Store interface {
	// Load lee todas las líneas persistidas en orden
	Load() ([]string, error)

	// Append añade solo las líneas nuevas, preservando orden de llegada
	Append(lines []string) error

	// Replace reescribe el contenido completo (para listas derivadas)
	Replace(lines []string) error

	// Path retorna la ubicación en disco
	Path() string
}

// Workspace define el layout en disco por target bajo el directorio
// base configurado. Toda escritura de artifacts pasa por aquí: ningún
// componente construye paths por su cuenta.
type Workspace interface {
	// ReconDir asegura y retorna <base>/<target>/recon
	ReconDir(target domain.Target) (string, error)

	// ReportsDir asegura y retorna <base>/<target>/reports
	ReportsDir(target domain.Target) (string, error)

	// WriteToolOutput persiste la salida cruda de una herramienta en
	// recon/<tool>.txt y retorna el path escrito
	WriteToolOutput(target domain.Target, tool string, lines []string) (string, error)

	// AggregateStore retorna el store append-only de recon/all_subdomains.txt
	AggregateStore(target domain.Target) (Store, error)

	// ActiveStore retorna el store de recon/active_subdomains.txt
	ActiveStore(target domain.Target) (Store, error)
}

// ReportWriter renderiza el modelo de reporte en un formato concreto.
// Todos los formatos derivan del mismo domain.Report.
type ReportWriter interface {
	// Format retorna el formato que emite este writer
	Format() domain.ReportFormat

	// Write renderiza el reporte bajo dir y retorna el artifact escrito
	Write(report *domain.Report, dir string) (domain.ReportArtifact, error)
}
