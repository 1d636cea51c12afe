// Package assetfinder integrates tomnomnom's assetfinder.
package assetfinder

import (
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/sources/common"
)

// Descriptor retorna la declaración por defecto de assetfinder.
func Descriptor() registry.ToolDescriptor {
	return registry.ToolDescriptor{
		Name:          "assetfinder",
		Binary:        "assetfinder",
		Args:          []string{"--subs-only", registry.DomainPlaceholder},
		Kind:          registry.KindEnum,
		Priority:      6,
		TimeoutS:      600,
		Package:       "github.com/tomnomnom/assetfinder",
		InstallMethod: "go install",
		Alternatives:  []string{"amass", "subfinder"},
		Description:   "Fast subdomain discovery from public sources",
	}
}

// Auto-registration on package import
func init() {
	if err := registry.Global().Register(factory, Descriptor()); err != nil {
		logx.New().Warn("failed to register assetfinder tool", "error", err.Error())
	}
}

func factory(desc registry.ToolDescriptor, logger logx.Logger) (ports.Tool, error) {
	return common.NewCLITool(desc, logger), nil
}
