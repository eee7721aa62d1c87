package commands

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/slidedeck/internal/config"
	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/watch"
)

// PreviewCmd builds the deck and runs the preview command.
type PreviewCmd struct {
	Watch   bool `short:"w" help:"Rebuild whenever the registry changes"`
	NoServe bool `name:"no-serve" help:"Do not start the preview command (use with --watch)"`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	opts := buildOptions{recentCount: cfg.RecentCount, outDir: cfg.OutputDir, check: true}
	if err := runBuild(sigctx, g, cfg, opts); err != nil {
		return err
	}

	if p.Watch {
		w, err := watch.NewRegistryWatcher(cfg.Registry, func(ctx context.Context) error {
			g.println("Registry changed, rebuilding...")
			return runBuild(ctx, g, cfg, opts)
		})
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch registry").
				WithContext("path", cfg.Registry).
				Build()
		}
		w.WithLogger(g.log())
		if p.NoServe {
			return w.Run(sigctx)
		}
		go func() {
			if err := w.Run(sigctx); err != nil {
				g.log().Error("Registry watcher stopped", logfields.Error(err))
			}
		}()
	}
	if p.NoServe {
		return nil
	}

	g.println("Starting Quarto preview...")
	return runPreviewCommand(sigctx, cfg)
}

func runPreviewCommand(ctx context.Context, cfg *config.Config) error {
	fields := strings.Fields(cfg.Preview.Command)
	if len(fields) == 0 {
		return errors.ConfigError("preview.command is empty").Build()
	}
	// #nosec G204 -- the preview command comes from the project configuration
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = cfg.OutputDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.BuildError("preview command failed").
			WithCause(err).
			WithContext("command", cfg.Preview.Command).
			Build()
	}
	return nil
}
