// internal/core/usecases/targets.go
package usecases

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
)

// TargetInput es el resultado de parsear la entrada del batch: los
// targets válidos más las líneas inválidas registradas como skipped.
type TargetInput struct {
	Targets []domain.Target
	Skipped []domain.TargetSummary
}

// LoadTargetsFile lee el archivo de targets (un dominio por línea).
// Líneas vacías y comentarios se ignoran; las inválidas se registran
// como skipped y no abortan el batch. Un archivo ilegible es el único
// error fatal de entrada.
func LoadTargetsFile(path string, logger logx.Logger) (*TargetInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputUnreadable, path)
	}
	defer f.Close()

	input := &TargetInput{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := strings.TrimSpace(strings.TrimSuffix(scanner.Text(), "\r"))
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		target, err := domain.NewTarget(raw)
		if err != nil {
			logger.Warn("invalid target line, skipping",
				"file", path,
				"line", lineNum,
				"value", raw,
				"error", err.Error(),
			)
			input.Skipped = append(input.Skipped, domain.TargetSummary{
				Target: raw,
				Status: domain.TargetSkipped,
				Err:    err.Error(),
			})
			continue
		}

		if seen[target.Root] {
			continue
		}
		seen[target.Root] = true
		input.Targets = append(input.Targets, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputUnreadable, path)
	}

	// Un archivo legible sin targets válidos no aborta el batch: las
	// líneas inválidas quedan como skipped y no hay nada que intentar
	if len(input.Targets) == 0 {
		logger.Warn("no valid targets in input file", "file", path, "skipped", len(input.Skipped))
	}

	return input, nil
}

// SingleTarget construye la entrada para el modo -d/--domain.
func SingleTarget(raw string) (*TargetInput, error) {
	target, err := domain.NewTarget(raw)
	if err != nil {
		return nil, err
	}
	return &TargetInput{Targets: []domain.Target{target}}, nil
}
