package commands

import (
	"context"
	"strings"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/slidedeck/internal/config"
	"git.home.luguber.info/inful/slidedeck/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	FigurePath string `arg:"" name:"figure-path" help:"Path to the figure image file"`
	Backend    string `help:"History backend: cli or gogit (default from configuration)"`
	NoColor    bool   `name:"no-color" help:"Disable coloured output"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg, h.Backend)
	if err != nil {
		return err
	}

	revs := history.NewReader(backend).WithLogger(g.log()).History(context.Background(), h.FigurePath)
	if len(revs) == 0 {
		g.printf("No git history found for %s\n", h.FigurePath)
		g.println("(File may not be tracked by git or has no commits)")
		return nil
	}

	index := color.New(color.FgCyan, color.Bold)
	commit := color.New(color.FgYellow)
	if h.NoColor {
		index.DisableColor()
		commit.DisableColor()
	}

	g.printf("Git history for %s:\n", h.FigurePath)
	g.println(strings.Repeat("-", 60))
	for i, rev := range revs {
		g.printf("\n%s %s\n", index.Sprintf("[%d]", i+1), rev.Date)
		g.printf("    Commit: %s\n", commit.Sprint(rev.Short()))
		g.printf("    Message: %s\n", rev.Subject)
	}
	g.printf("\n%d version(s) found\n", len(revs))
	g.println("\nUse 'slidedeck compare' to generate a visual comparison.")
	return nil
}

func newBackend(cfg *config.Config, override string) (history.Backend, error) {
	kind := cfg.Git.Backend
	if override != "" {
		kind = override
	}
	return history.NewBackend(kind, "", cfg.Git.Binary)
}
