package commands

import (
	"context"
	stderrors "errors"

	"git.home.luguber.info/inful/slidedeck/internal/history"
)

// CompareCmd implements the 'compare' command.
type CompareCmd struct {
	FigurePath string `arg:"" name:"figure-path" help:"Path to the figure image file"`
	Output     string `short:"o" name:"output" default:"comparison.html" help:"Output HTML file"`
	Backend    string `help:"History backend: cli or gogit (default from configuration)"`
}

func (c *CompareCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg, c.Backend)
	if err != nil {
		return err
	}
	rec, flush := newRecorder(cfg)
	defer flush()

	res, err := history.NewComparer(backend).
		WithRecorder(rec).
		WithLogger(g.log()).
		Compare(context.Background(), c.FigurePath, c.Output)
	switch {
	case stderrors.Is(err, history.ErrNoHistory):
		g.printf("No git history found for %s\n", c.FigurePath)
		return nil
	case stderrors.Is(err, history.ErrNothingToCompare):
		g.println("Only one version found. Nothing to compare.")
		return nil
	case err != nil:
		return err
	}

	g.printf("Generated comparison: %s\n", res.Output)
	g.printf("Showing %d versions\n", res.Rendered)
	if res.Failed > 0 {
		g.printf("Skipped %d version(s) that could not be extracted\n", res.Failed)
	}
	return nil
}
