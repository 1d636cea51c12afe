// Package subfinder integrates Project Discovery's subfinder.
package subfinder

import (
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/sources/common"
)

// Descriptor retorna la declaración por defecto de subfinder.
// -silent limita stdout a un subdominio por línea.
func Descriptor() registry.ToolDescriptor {
	return registry.ToolDescriptor{
		Name:          "subfinder",
		Binary:        "subfinder",
		Args:          []string{"-d", registry.DomainPlaceholder, "-all", "-silent"},
		Kind:          registry.KindEnum,
		Priority:      8,
		TimeoutS:      2800,
		Package:       "github.com/projectdiscovery/subfinder/v2/cmd/subfinder",
		InstallMethod: "go install",
		Alternatives:  []string{"amass", "assetfinder"},
		Description:   "Multi-source passive subdomain discovery",
	}
}

// Auto-registration on package import
func init() {
	if err := registry.Global().Register(factory, Descriptor()); err != nil {
		logx.New().Warn("failed to register subfinder tool", "error", err.Error())
	}
}

func factory(desc registry.ToolDescriptor, logger logx.Logger) (ports.Tool, error) {
	return common.NewCLITool(desc, logger), nil
}
