// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar colores, tablas y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Banner muestra el header principal y la configuración del batch
func (p *PTermPresenter) Banner(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("deivao-recon - Subdomain Reconnaissance Pipeline")

	pterm.Println()

	infoPanel := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))

	content := fmt.Sprintf("%s Targets: %s\n", IconTarget, pterm.Cyan(fmt.Sprintf("%d", info.Targets)))
	content += fmt.Sprintf("%s Tools: %s\n", IconTools, pterm.Yellow(strings.Join(info.Tools, ", ")))
	content += fmt.Sprintf("%s Workers: %d  Threads: %d\n", IconWorkers, info.Workers, info.Threads)
	content += fmt.Sprintf("   Formats: %s\n", strings.Join(info.Formats, ", "))
	content += fmt.Sprintf("   Output: %s", info.OutputDir)

	infoPanel.Println(content)

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()
}

// Availability muestra la tabla de herramientas detectadas
func (p *PTermPresenter) Availability(tools []ToolStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tableData := pterm.TableData{
		{"Tool", "Status", "Detail"},
	}

	for _, t := range tools {
		status := pterm.Green(StatusSuccess.Symbol() + " available")
		detail := t.Path
		if !t.Available {
			status = pterm.Red(StatusError.Symbol() + " missing")
			detail = t.Hint
		}
		tableData = append(tableData, []string{t.Name, status, detail})
	}

	pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(tableData).
		Render()

	pterm.Println()
}

// TargetStarted muestra el header del target actual
func (p *PTermPresenter) TargetStarted(index, total int, target string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := fmt.Sprintf("%s Target %d/%d: %s",
		IconTarget, index, total, pterm.Cyan(target))
	pterm.DefaultSection.WithLevel(2).Println(title)
}

// ToolFinished renderiza la línea de resultado de una herramienta
func (p *PTermPresenter) ToolFinished(tool string, status Status, duration time.Duration, lines int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("  %s %s (%s)",
		status.Symbol(),
		status.Style().Sprint(tool),
		formatDuration(duration),
	)
	if lines > 0 {
		line += fmt.Sprintf(" %s lines", pterm.Cyan(fmt.Sprintf("%d", lines)))
	}
	pterm.Println(line)
}

// StageNote muestra una línea de progreso de stage
func (p *PTermPresenter) StageNote(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println(pterm.Gray("  " + msg))
}

// TargetFinished muestra el resumen del target
func (p *PTermPresenter) TargetFinished(result TargetResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := StatusSuccess
	switch result.Status {
	case "degraded":
		status = StatusWarning
	case "failed":
		status = StatusError
	case "skipped":
		status = StatusSkipped
	}

	pterm.Println()
	line := fmt.Sprintf("%s %s: %d subdomains (%d new), %d active in %s",
		status.Symbol(),
		status.Style().Sprint(result.Target),
		result.Found,
		result.NewFound,
		result.Active,
		formatDuration(result.Duration),
	)
	pterm.Println(line)

	if len(result.Degraded) > 0 {
		pterm.Println(pterm.Yellow(fmt.Sprintf("  degraded stages: %s", strings.Join(result.Degraded, ", "))))
	}
	if result.Err != "" {
		pterm.Println(pterm.Red("  " + result.Err))
	}

	pterm.Println(pterm.Gray(SeparatorLight))
	pterm.Println()
}

// Summary muestra las estadísticas finales del batch
func (p *PTermPresenter) Summary(batch BatchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("Recon Completed")

	pterm.Println()

	statsPanel := pterm.DefaultBox.
		WithTitle("Batch Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(batch.Duration)))
	content += fmt.Sprintf("%s Completed: %s\n", IconStats, pterm.Green(fmt.Sprintf("%d", batch.Completed)))
	if batch.Degraded > 0 {
		content += fmt.Sprintf("   Degraded: %s\n", pterm.Yellow(fmt.Sprintf("%d", batch.Degraded)))
	}
	if batch.Failed > 0 {
		content += fmt.Sprintf("   Failed: %s\n", pterm.Red(fmt.Sprintf("%d", batch.Failed)))
	}
	if batch.Skipped > 0 {
		content += fmt.Sprintf("   Skipped: %s\n", pterm.Gray(fmt.Sprintf("%d", batch.Skipped)))
	}

	statsPanel.Println(strings.TrimRight(content, "\n"))
	pterm.Println()
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	return nil
}

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
