// internal/platform/registry/config_file.go
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// toolsFile es el esquema del archivo --tools-config.
//
//	tools:
//	  - name: findomain
//	    binary: findomain
//	    args: ["--target", "{{domain}}", "--quiet"]
//	    priority: 3
//	    timeout: 600
type toolsFile struct {
	Tools []ToolDescriptor `yaml:"tools"`
}

// LoadFile aplica los descriptores de un archivo YAML al registry:
// overrides parciales para herramientas conocidas, altas completas
// (variante "comando externo genérico") para las demás.
func (r *ToolRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tools config %s: %w", path, err)
	}

	var file toolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse tools config %s: %w", path, err)
	}

	for _, desc := range file.Tools {
		if err := r.AddDescriptor(desc); err != nil {
			return fmt.Errorf("invalid tool descriptor in %s: %w", path, err)
		}
	}

	return nil
}
