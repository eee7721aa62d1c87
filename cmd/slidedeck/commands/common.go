package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/slidedeck/internal/config"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/metrics"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing progress lines.
	Out io.Writer
}

// NewGlobal returns the default Global writing to stdout.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout}
}

func (g *Global) log() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(g.Out, format, args...)
}

func (g *Global) println(args ...any) {
	_, _ = fmt.Fprintln(g.Out, args...)
}

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file path" default:"slidedeck.yaml"`
	Registry string           `short:"r" help:"Registry file (overrides configuration)"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init       InitCmd    `cmd:"" help:"Create a starter slides.yaml"`
	Add        AddCmd     `cmd:"" help:"Add a new figure to the slide deck"`
	Build      BuildCmd   `cmd:"" help:"Build/regenerate all QMD files from slides.yaml"`
	Preview    PreviewCmd `cmd:"" help:"Build and preview the slides"`
	History    HistoryCmd `cmd:"" help:"View git history of a specific figure"`
	Compare    CompareCmd `cmd:"" help:"Generate comparison view of figure versions from git history"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.logLevel()})))
	return nil
}

func (c *CLI) logLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if v := strings.TrimSpace(os.Getenv(config.EnvLogLevel)); v != "" && level.UnmarshalText([]byte(v)) == nil {
		return level
	}
	return slog.LevelInfo
}

// LoadConfig loads .env files and the project configuration, then applies
// the global --registry flag.
func (c *CLI) LoadConfig() (*config.Config, error) {
	if files, err := config.LoadEnvFiles(""); err != nil {
		slog.Warn("Failed to load env file", logfields.Error(err))
	} else if len(files) > 0 {
		slog.Debug("Loaded environment files", slog.Any("files", files))
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Registry != "" {
		cfg.Registry = c.Registry
	}
	return cfg, nil
}

// newRecorder returns a Prometheus recorder when a textfile is configured.
func newRecorder(cfg *config.Config) (metrics.Recorder, func()) {
	if cfg.Metrics.Textfile == "" {
		return metrics.NoopRecorder{}, func() {}
	}
	rec := metrics.NewPrometheusRecorder(nil)
	return rec, func() {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
}
