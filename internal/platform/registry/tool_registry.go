// internal/platform/registry/tool_registry.go
package registry

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
)

// ToolKind distingue herramientas de enumeración de probes de liveness.
type ToolKind string

const (
	KindEnum  ToolKind = "enum"
	KindProbe ToolKind = "probe"
)

// ToolDescriptor es la declaración estática de una herramienta externa.
// El contrato con el binario es solo exit code + stdout (una línea por
// candidato o resultado de probe); no hay IPC estructurado.
type ToolDescriptor struct {
	Name          string   `yaml:"name"`
	Binary        string   `yaml:"binary"`
	Args          []string `yaml:"args"`
	Kind          ToolKind `yaml:"kind"`
	Priority      int      `yaml:"priority"`
	TimeoutS      int      `yaml:"timeout"`
	Stdin         bool     `yaml:"stdin"`
	Package       string   `yaml:"package"`
	InstallMethod string   `yaml:"install_method"`
	Alternatives  []string `yaml:"alternatives"`
	Description   string   `yaml:"description"`
}

// DomainPlaceholder es el marcador que se sustituye por el target en
// los args de invocación.
const DomainPlaceholder = "{{domain}}"

// Validate verifica que el descriptor sea utilizable.
func (d ToolDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if d.Binary == "" {
		return fmt.Errorf("tool %s: binary cannot be empty", d.Name)
	}
	if d.Kind != KindEnum && d.Kind != KindProbe {
		return fmt.Errorf("tool %s: invalid kind %q", d.Name, d.Kind)
	}
	if d.Kind == KindEnum && !d.Stdin && !d.hasPlaceholder() {
		return fmt.Errorf("tool %s: args must reference %s", d.Name, DomainPlaceholder)
	}
	return nil
}

func (d ToolDescriptor) hasPlaceholder() bool {
	for _, a := range d.Args {
		if strings.Contains(a, DomainPlaceholder) {
			return true
		}
	}
	return false
}

// Timeout retorna el timeout del descriptor como duración.
func (d ToolDescriptor) Timeout() time.Duration {
	if d.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(d.TimeoutS) * time.Second
}

// RenderArgs sustituye el placeholder de dominio en los args.
func (d ToolDescriptor) RenderArgs(domain string) []string {
	out := make([]string, len(d.Args))
	for i, a := range d.Args {
		out[i] = strings.ReplaceAll(a, DomainPlaceholder, domain)
	}
	return out
}

// InstallHint retorna una sugerencia de instalación legible.
func (d ToolDescriptor) InstallHint() string {
	if d.Package == "" {
		return ""
	}
	if d.InstallMethod == "" {
		return d.Package
	}
	return fmt.Sprintf("%s (%s)", d.Package, d.InstallMethod)
}

// ToolFactory construye un ports.Tool a partir de un descriptor resuelto.
type ToolFactory func(desc ToolDescriptor, logger logx.Logger) (ports.Tool, error)

// Availability es el resultado de resolver un descriptor contra PATH.
type Availability struct {
	Name         string
	Binary       string
	Path         string
	Available    bool
	Alternatives []string // alternativas instaladas
	InstallHint  string
}

// ToolRegistry gestiona descriptores y factories de herramientas.
// Implementa el patrón Registry + Factory: cada paquete de source se
// auto-registra vía init(), y los comandos genéricos declarados por
// YAML caen en la factory genérica.
type ToolRegistry struct {
	mu          sync.RWMutex
	factories   map[string]ToolFactory
	descriptors map[string]ToolDescriptor
	genericName string
	logger      logx.Logger
}

// globalRegistry es la instancia global del registry.
var globalRegistry *ToolRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *ToolRegistry {
	once.Do(func() {
		globalRegistry = NewToolRegistry(logx.New())
	})
	return globalRegistry
}

// NewToolRegistry crea un registry vacío.
func NewToolRegistry(logger logx.Logger) *ToolRegistry {
	return &ToolRegistry{
		factories:   make(map[string]ToolFactory),
		descriptors: make(map[string]ToolDescriptor),
		logger:      logger.With("component", "tool-registry"),
	}
}

// Register registra una factory con su descriptor por defecto.
// Típicamente llamado desde init() de cada paquete de source.
func (r *ToolRegistry) Register(factory ToolFactory, desc ToolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := desc.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for tool %s", desc.Name)
	}
	if _, exists := r.factories[desc.Name]; exists {
		return fmt.Errorf("tool %s is already registered", desc.Name)
	}

	r.factories[desc.Name] = factory
	r.descriptors[desc.Name] = desc
	r.logger.Debug("tool registered", "name", desc.Name, "kind", desc.Kind, "priority", desc.Priority)

	return nil
}

// RegisterGeneric registra la factory usada por descriptores declarados
// en el archivo de configuración sin factory dedicada.
func (r *ToolRegistry) RegisterGeneric(factory ToolFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genericName = "generic"
	r.factories[r.genericName] = factory
}

// AddDescriptor añade o sobreescribe un descriptor (override por YAML).
// Un override parcial conserva los campos no declarados del default.
func (r *ToolRegistry) AddDescriptor(desc ToolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.descriptors[desc.Name]; ok {
		desc = mergeDescriptor(existing, desc)
	}
	if desc.Kind == "" {
		desc.Kind = KindEnum
	}
	if err := desc.Validate(); err != nil {
		return err
	}

	r.descriptors[desc.Name] = desc
	return nil
}

// mergeDescriptor aplica un override parcial sobre un descriptor base.
func mergeDescriptor(base, override ToolDescriptor) ToolDescriptor {
	out := base
	if override.Binary != "" {
		out.Binary = override.Binary
	}
	if len(override.Args) > 0 {
		out.Args = override.Args
	}
	if override.Kind != "" {
		out.Kind = override.Kind
	}
	if override.Priority != 0 {
		out.Priority = override.Priority
	}
	if override.TimeoutS != 0 {
		out.TimeoutS = override.TimeoutS
	}
	if override.Package != "" {
		out.Package = override.Package
	}
	if override.InstallMethod != "" {
		out.InstallMethod = override.InstallMethod
	}
	if len(override.Alternatives) > 0 {
		out.Alternatives = override.Alternatives
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	out.Stdin = base.Stdin || override.Stdin
	return out
}

// Descriptor retorna el descriptor de una herramienta.
func (r *ToolRegistry) Descriptor(name string) (ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// List retorna los nombres de todas las herramientas registradas.
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered verifica si una herramienta está registrada.
func (r *ToolRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.descriptors[name]
	return exists
}

// Resolve comprueba la existencia en PATH de los binarios de las
// herramientas pedidas, antes de procesar ningún target. Las ausentes
// quedan deshabilitadas con warning nombrando alternativas instaladas.
func (r *ToolRegistry) Resolve(names []string) []Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Availability, 0, len(names))
	for _, name := range names {
		desc, ok := r.descriptors[name]
		if !ok {
			out = append(out, Availability{Name: name, Available: false})
			continue
		}

		av := Availability{
			Name:        desc.Name,
			Binary:      desc.Binary,
			InstallHint: desc.InstallHint(),
		}
		if path, err := exec.LookPath(desc.Binary); err == nil {
			av.Available = true
			av.Path = path
		} else {
			// Nombrar solo alternativas realmente presentes
			for _, alt := range desc.Alternatives {
				altDesc, ok := r.descriptors[alt]
				if !ok {
					continue
				}
				if _, err := exec.LookPath(altDesc.Binary); err == nil {
					av.Alternatives = append(av.Alternatives, alt)
				}
			}
		}
		out = append(out, av)
	}

	return out
}

// Build construye las herramientas disponibles de la lista pedida,
// ordenadas por prioridad descendente (orden estable para empates).
// Las no disponibles se omiten con warning; el error solo aparece
// cuando ninguna herramienta pudo construirse.
func (r *ToolRegistry) Build(names []string, logger logx.Logger) ([]ports.Tool, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	resolved := r.Resolve(names)

	r.mu.RLock()
	defer r.mu.RUnlock()

	type candidate struct {
		desc ToolDescriptor
		path string
	}
	candidates := make([]candidate, 0, len(resolved))

	for _, av := range resolved {
		desc, ok := r.descriptors[av.Name]
		if !ok {
			logger.Warn("tool not registered, skipping", "tool", av.Name)
			continue
		}
		if !av.Available {
			kv := []any{"tool", av.Name, "binary", desc.Binary}
			if len(av.Alternatives) > 0 {
				kv = append(kv, "alternatives", strings.Join(av.Alternatives, ","))
			}
			if hint := desc.InstallHint(); hint != "" {
				kv = append(kv, "install", hint)
			}
			logger.Warn("tool binary not found in PATH, disabling", kv...)
			continue
		}

		desc.Binary = av.Path // binario resuelto
		candidates = append(candidates, candidate{desc: desc, path: av.Path})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].desc.Priority > candidates[j].desc.Priority
	})

	tools := make([]ports.Tool, 0, len(candidates))
	for _, c := range candidates {
		factory, ok := r.factories[c.desc.Name]
		if !ok {
			factory, ok = r.factories[r.genericName]
			if !ok {
				logger.Warn("no factory for tool, skipping", "tool", c.desc.Name)
				continue
			}
		}

		tool, err := factory(c.desc, logger)
		if err != nil {
			logger.Warn("failed to build tool", "tool", c.desc.Name, "error", err.Error())
			continue
		}
		tools = append(tools, tool)
		logger.Debug("tool built", "tool", c.desc.Name, "priority", c.desc.Priority, "path", c.path)
	}

	if len(tools) == 0 && len(names) > 0 {
		return nil, fmt.Errorf("no tools could be built from: %s", strings.Join(names, ", "))
	}

	return tools, nil
}

// Clear elimina todas las herramientas registradas (útil para testing).
func (r *ToolRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]ToolFactory)
	r.descriptors = make(map[string]ToolDescriptor)
	r.genericName = ""
}
