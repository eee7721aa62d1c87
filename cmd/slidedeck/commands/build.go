package commands

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/slidedeck/internal/config"
	"git.home.luguber.info/inful/slidedeck/internal/deck"
	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/metrics"
	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	RecentCount *int   `short:"n" name:"recent-count" help:"Number of recent figures to show (default from configuration)"`
	Output      string `short:"o" name:"output" help:"Output directory (overrides configuration)"`
	NoCheck     bool   `name:"no-check" help:"Skip the missing figure check"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	opts := buildOptions{recentCount: cfg.RecentCount, outDir: cfg.OutputDir, check: !b.NoCheck}
	if b.RecentCount != nil {
		opts.recentCount = *b.RecentCount
	}
	if b.Output != "" {
		opts.outDir = b.Output
	}
	return runBuild(context.Background(), g, cfg, opts)
}

type buildOptions struct {
	recentCount int
	outDir      string
	check       bool
}

// runBuild loads the registry and writes all outputs. Shared with preview.
func runBuild(ctx context.Context, g *Global, cfg *config.Config, opts buildOptions) error {
	if opts.recentCount < 0 {
		return errors.ValidationError("--recent-count must not be negative").
			WithContext("recent_count", opts.recentCount).
			Build()
	}

	rec, flush := newRecorder(cfg)
	defer flush()

	var reg *registry.Registry
	err := metrics.Stage(rec, metrics.StageLoad, func() error {
		var loadErr error
		reg, loadErr = registry.Load(cfg.Registry)
		return loadErr
	})
	if err != nil {
		rec.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return err
	}

	res, err := deck.NewBuilder(opts.outDir).
		WithRecentCount(opts.recentCount).
		WithRecorder(rec).
		WithLogger(g.log()).
		Build(ctx, reg)
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		g.printf("Generated %s\n", f.Path)
		g.log().Debug("Output fingerprint", logfields.Document(f.Name), "fingerprint", f.Fingerprint)
	}

	if opts.check {
		_ = metrics.Stage(rec, metrics.StageAssets, func() error {
			for _, m := range deck.CheckAssets(reg, filepath.Dir(cfg.Registry)) {
				g.log().Warn("Referenced figure not found",
					logfields.SlideID(m.SlideID),
					logfields.Path(m.Path),
					"source", string(m.Source))
			}
			return nil
		})
	}

	g.printf("Build complete: %d slides across %d topics\n", res.Slides, res.Topics)
	return nil
}
