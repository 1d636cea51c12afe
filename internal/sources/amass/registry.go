// Package amass integrates OWASP Amass passive enumeration.
package amass

import (
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/sources/common"
)

// Descriptor retorna la declaración por defecto de amass.
// Salida: un subdominio candidato por línea en stdout.
func Descriptor() registry.ToolDescriptor {
	return registry.ToolDescriptor{
		Name:          "amass",
		Binary:        "amass",
		Args:          []string{"enum", "-passive", "-d", registry.DomainPlaceholder},
		Kind:          registry.KindEnum,
		Priority:      10,
		TimeoutS:      2800,
		Package:       "github.com/owasp-amass/amass/v4/...",
		InstallMethod: "go install",
		Alternatives:  []string{"subfinder", "assetfinder"},
		Description:   "In-depth passive subdomain enumeration",
	}
}

// Auto-registration on package import
func init() {
	if err := registry.Global().Register(factory, Descriptor()); err != nil {
		logx.New().Warn("failed to register amass tool", "error", err.Error())
	}
}

func factory(desc registry.ToolDescriptor, logger logx.Logger) (ports.Tool, error) {
	return common.NewCLITool(desc, logger), nil
}
