// cmd/deivao-recon/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DavidJovino/deivao-recon/internal/adapters/notify"
	"github.com/DavidJovino/deivao-recon/internal/adapters/output"
	"github.com/DavidJovino/deivao-recon/internal/adapters/report"
	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/core/usecases"
	"github.com/DavidJovino/deivao-recon/internal/platform/config"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/registry"
	"github.com/DavidJovino/deivao-recon/internal/platform/ui"
	"github.com/DavidJovino/deivao-recon/internal/probe"

	// Import sources for auto-registration via init()
	_ "github.com/DavidJovino/deivao-recon/internal/sources/amass"
	_ "github.com/DavidJovino/deivao-recon/internal/sources/assetfinder"
	_ "github.com/DavidJovino/deivao-recon/internal/sources/generic"
	_ "github.com/DavidJovino/deivao-recon/internal/sources/subfinder"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Config centralizada: defaults -> env -> flags
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}

	if cfg.PrintVersion {
		fmt.Printf("deivao-recon %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	// 2. Logger compartido, con sink a archivo opcional
	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer closeLog()

	// 3. Descriptores extra/overrides declarados por YAML
	if cfg.ToolsConfig != "" {
		if err := registry.Global().LoadFile(cfg.ToolsConfig); err != nil {
			logger.Err(err, "phase", "tools-config")
			return 2
		}
	}
	applyTimeoutOverride(cfg)

	presenter := buildPresenter(cfg)
	defer presenter.Close()

	// 4. Modo check-only: tabla de disponibilidad y salir
	if cfg.CheckOnly {
		return checkOnly(cfg, presenter)
	}

	// 5. Targets: archivo posicional o -d/--domain
	input, err := loadInput(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "input")
		return 1
	}

	// 6. Contexto raíz con cancelación por señales
	ctx, cancel := rootContextWithSignals(logger)
	defer cancel()

	// 7. Herramientas de enumeración desde el registry
	tools, err := registry.Global().Build(cfg.Tools, logger)
	if err != nil {
		logger.Err(err, "phase", "tool-build")
		return 1
	}

	// 8. Prober (httpx o fallback nativo), workspace, writers, notifiers
	prober := probe.New(probe.Config{
		Threads:        cfg.Threads,
		PerHostTimeout: cfg.ProbeTimeout(),
	}, logger)

	workspace := output.NewWorkspace(cfg.OutputDir)

	writers, err := buildWriters(cfg)
	if err != nil {
		logger.Err(err, "phase", "report-writers")
		return 2
	}

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "notify-config")
		return 2
	}
	if notifier != nil {
		defer notifier.Close()
	}

	presenter.Banner(ui.RunInfo{
		Targets:   len(input.Targets),
		Tools:     cfg.Tools,
		Workers:   cfg.Workers,
		Threads:   cfg.Threads,
		OutputDir: cfg.OutputDir,
		Formats:   cfg.Formats(),
	})

	logger.Info("deivao-recon starting",
		"version", version,
		"targets", len(input.Targets),
		"tools", strings.Join(cfg.Tools, ","),
		"workers", cfg.Workers,
		"output", cfg.OutputDir,
	)

	// 9. Orchestrator y ejecución del batch
	orch, err := usecases.NewPipelineOrchestrator(usecases.OrchestratorConfig{
		Tools:     tools,
		Prober:    prober,
		Workspace: workspace,
		Writers:   writers,
		Notifier:  notifier,
		Presenter: presenter,
		Workers:   cfg.Workers,
		Logger:    logger,
	})
	if err != nil {
		logger.Err(err, "phase", "orchestrator-build")
		return 1
	}

	// 10. Todo intentado = éxito; las fallas por target ya quedaron
	// logueadas y en el resumen del batch
	orch.Run(ctx, input)
	return 0
}

// buildLogger crea el logger, con espejo a archivo cuando --log-file
// está presente.
func buildLogger(cfg config.Config) (logx.Logger, func(), error) {
	if cfg.LogFile == "" {
		logger := logx.New()
		if cfg.Verbose {
			logger.SetLevel(logx.LevelDebug)
		}
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", cfg.LogFile, err)
	}

	level := logx.LevelInfo
	if cfg.Verbose {
		level = logx.LevelDebug
	}
	logger := logx.NewWithWriter(level, io.MultiWriter(os.Stderr, f))
	return logger, func() { f.Close() }, nil
}

// buildPresenter elige la UI: pterm en terminal interactiva, silenciosa
// cuando stdout no es un TTY o con logging verbose (evita mezclar
// render interactivo con líneas de debug).
func buildPresenter(cfg config.Config) ui.Presenter {
	if cfg.Verbose || !isTTY(os.Stdout) {
		return ui.NewQuietPresenter()
	}
	return ui.NewPTermPresenter()
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// applyTimeoutOverride propaga --tool-timeout a los descriptores de
// enumeración cuando difiere del default.
func applyTimeoutOverride(cfg config.Config) {
	def := config.DefaultConfig()
	if cfg.ToolTimeoutS == def.ToolTimeoutS {
		return
	}
	for _, name := range cfg.Tools {
		if _, ok := registry.Global().Descriptor(name); !ok {
			continue
		}
		_ = registry.Global().AddDescriptor(registry.ToolDescriptor{
			Name:     name,
			TimeoutS: cfg.ToolTimeoutS,
		})
	}
}

// checkOnly resuelve la disponibilidad de las herramientas habilitadas
// (más el probe) y retorna 0 solo si todas, o una alternativa de cada
// una, están presentes.
func checkOnly(cfg config.Config, presenter ui.Presenter) int {
	names := append(append([]string{}, cfg.Tools...), "httpx")
	resolved := registry.Global().Resolve(names)

	rows := make([]ui.ToolStatus, 0, len(resolved))
	allOK := true
	for _, av := range resolved {
		hint := av.InstallHint
		if len(av.Alternatives) > 0 {
			hint = "alternatives: " + strings.Join(av.Alternatives, ", ")
		}
		rows = append(rows, ui.ToolStatus{
			Name:      av.Name,
			Available: av.Available,
			Path:      av.Path,
			Hint:      hint,
		})
		if !av.Available && len(av.Alternatives) == 0 {
			allOK = false
		}
	}

	presenter.Availability(rows)
	if !allOK {
		return 1
	}
	return 0
}

// loadInput construye la lista de targets desde -d o el archivo posicional.
func loadInput(cfg config.Config, logger logx.Logger) (*usecases.TargetInput, error) {
	if cfg.Domain != "" {
		return usecases.SingleTarget(cfg.Domain)
	}
	if cfg.InputFile == "" {
		return nil, fmt.Errorf("%w: no targets file or --domain given", domain.ErrInputUnreadable)
	}
	return usecases.LoadTargetsFile(cfg.InputFile, logger)
}

// buildWriters instancia los report writers según los formatos elegidos.
// Markdown siempre está presente.
func buildWriters(cfg config.Config) ([]ports.ReportWriter, error) {
	writers := []ports.ReportWriter{report.NewMarkdownWriter()}
	if cfg.HTML {
		hw, err := report.NewHTMLWriter()
		if err != nil {
			return nil, fmt.Errorf("html writer: %w", err)
		}
		writers = append(writers, hw)
	}
	if cfg.JSON {
		writers = append(writers, report.NewJSONWriter(version))
	}
	return writers, nil
}

// buildNotifier carga los canales de webhook cuando --notify está activo.
func buildNotifier(cfg config.Config, logger logx.Logger) (ports.Notifier, error) {
	if !cfg.Notify {
		return nil, nil
	}
	if cfg.NotifyConfig == "" {
		return nil, fmt.Errorf("--notify requires --notify-config")
	}

	nc, err := notify.LoadConfig(cfg.NotifyConfig)
	if err != nil {
		return nil, err
	}
	return notify.NewFromConfig(nc, logger), nil
}

// rootContextWithSignals crea el contexto raíz cancelado por SIGINT o
// SIGTERM. La primera señal cancela limpiamente; la segunda corta.
func rootContextWithSignals(logger logx.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-ch:
			logger.Warn("signal received, cancelling batch", "signal", sig.String())
			cancel()
			// Segunda señal: salida inmediata
			sig = <-ch
			logger.Warn("second signal, exiting", "signal", sig.String())
			os.Exit(130)
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()

	return ctx, cancel
}
