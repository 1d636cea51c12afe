// Package generic provides the "external command" tool variant: any
// enumeration binary declared in the --tools-config YAML runs through
// the same CLITool machinery as the built-in adapters, as long as it
// honors the one-candidate-per-line output contract.
package generic

import (
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/sources/common"
)

// Auto-registration on package import
func init() {
	registry.Global().RegisterGeneric(factory)
}

func factory(desc registry.ToolDescriptor, logger logx.Logger) (ports.Tool, error) {
	return common.NewCLITool(desc, logger), nil
}
