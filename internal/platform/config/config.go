// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config es la configuración completa de una ejecución.
type Config struct {
	// App
	Domain       string // target único (-d), alternativa al archivo
	InputFile    string // argumento posicional: un dominio por línea
	CheckOnly    bool
	Verbose      bool
	PrintVersion bool

	// Tools
	Tools        []string // herramientas de enumeración habilitadas
	ToolsConfig  string   // YAML de descriptores extra/overrides
	ToolTimeoutS int      // timeout por herramienta, segundos
	Workers      int      // pool de enumeración

	// Probe
	Threads       int // concurrencia del probe de liveness
	ProbeTimeoutS int // timeout por host, segundos

	// Output
	OutputDir string
	HTML      bool
	JSON      bool

	// Notify
	Notify       bool
	NotifyConfig string

	// Logging
	LogFile string
}

// DefaultConfig retorna una configuración por defecto.
// Los defaults numéricos replican los del pipeline original.
func DefaultConfig() Config {
	return Config{
		Tools:         []string{"amass", "subfinder", "assetfinder"},
		ToolTimeoutS:  2800,
		Workers:       4,
		Threads:       10,
		ProbeTimeoutS: 10,
		OutputDir:     filepath.Join("~", "Documents", "Bugbounty"),
	}
}

// Load inicializa la configuración: defaults -> ENV -> flags
// (los flags tienen prioridad), luego normaliza.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	if err := normalize(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadFromEnv carga configuración desde variables de entorno DEIVAO_*.
func loadFromEnv(cfg *Config) {
	if v := getenv("DEIVAO_OUTPUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("DEIVAO_TOOLS", ""); v != "" {
		cfg.Tools = splitList(v)
	}
	if v := getenv("DEIVAO_TOOL_TIMEOUT", ""); v != "" {
		cfg.ToolTimeoutS = parseInt(v, cfg.ToolTimeoutS)
	}
	if v := getenv("DEIVAO_WORKERS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv("DEIVAO_THREADS", ""); v != "" {
		cfg.Threads = parseInt(v, cfg.Threads)
	}
	if v := getenv("DEIVAO_PROBE_TIMEOUT", ""); v != "" {
		cfg.ProbeTimeoutS = parseInt(v, cfg.ProbeTimeoutS)
	}
	if v := getenv("DEIVAO_NOTIFY_CONFIG", ""); v != "" {
		cfg.NotifyConfig = v
	}
}

// loadFromFlags parsea flags de CLI con pflag. El primer argumento
// posicional es el archivo de targets.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("deivao-recon", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deivao-recon [flags] <targets-file>")
		fmt.Fprintln(os.Stderr, "       deivao-recon [flags] -d <domain>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	fs.StringVarP(&cfg.Domain, "domain", "d", cfg.Domain, "single target domain (alternative to the targets file)")
	fs.StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "output base directory")
	toolsCSV := fs.String("tools", strings.Join(cfg.Tools, ","), "comma-separated list of enabled enumeration tools")
	fs.StringVar(&cfg.ToolsConfig, "tools-config", cfg.ToolsConfig, "YAML file overriding or adding tool descriptors")
	fs.IntVar(&cfg.ToolTimeoutS, "tool-timeout", cfg.ToolTimeoutS, "per-tool timeout in seconds")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "enumeration worker pool size")
	fs.IntVarP(&cfg.Threads, "threads", "t", cfg.Threads, "liveness probe concurrency")
	fs.IntVar(&cfg.ProbeTimeoutS, "probe-timeout", cfg.ProbeTimeoutS, "per-host probe timeout in seconds")
	fs.BoolVar(&cfg.HTML, "html", cfg.HTML, "also emit HTML report")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "also emit JSON report")
	fs.BoolVar(&cfg.Notify, "notify", cfg.Notify, "send webhook notifications")
	fs.StringVar(&cfg.NotifyConfig, "notify-config", cfg.NotifyConfig, "YAML webhook channel config")
	fs.BoolVar(&cfg.CheckOnly, "check-only", cfg.CheckOnly, "verify tool availability and exit")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "mirror logs to a file")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Tools = splitList(*toolsCSV)

	if fs.NArg() > 0 {
		cfg.InputFile = fs.Arg(0)
	}

	return nil
}

func normalize(c *Config) error {
	c.Domain = strings.TrimSpace(strings.ToLower(strings.TrimSuffix(c.Domain, ".")))

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Threads < 1 {
		c.Threads = 1
	}
	if c.ToolTimeoutS < 0 {
		c.ToolTimeoutS = 0
	}
	if c.ProbeTimeoutS < 1 {
		c.ProbeTimeoutS = 1
	}

	if len(c.Tools) == 0 {
		c.Tools = DefaultConfig().Tools
	}

	dir, err := expandHome(c.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid output directory %q: %w", c.OutputDir, err)
	}
	c.OutputDir = dir

	return nil
}

// Formats retorna los formatos de reporte seleccionados.
// Markdown siempre está presente.
func (c Config) Formats() []string {
	formats := []string{"markdown"}
	if c.HTML {
		formats = append(formats, "html")
	}
	if c.JSON {
		formats = append(formats, "json")
	}
	return formats
}

// ToolTimeout retorna el timeout por herramienta como duración.
func (c Config) ToolTimeout() time.Duration {
	if c.ToolTimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.ToolTimeoutS) * time.Second
}

// ProbeTimeout retorna el timeout por host como duración.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutS) * time.Second
}

// Helpers

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
