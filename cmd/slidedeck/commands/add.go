package commands

import (
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// AddCmd implements the 'add' command.
type AddCmd struct {
	FigurePath string `arg:"" name:"figure-path" help:"Path to the figure image file"`
	Topic      string `short:"t" help:"Topic ID (inferred from path if not provided)"`
	Title      string `short:"T" help:"Slide title (inferred from filename if not provided)"`
	Caption    string `help:"Figure caption (appears below the figure)"`
	Notes      string `short:"n" help:"Speaker notes (not visible on slides)"`
	Tags       string `help:"Comma-separated tags"`
	Copy       bool   `help:"Copy figure to the figures directory"`
	Date       string `help:"Creation date (YYYY-MM-DD), defaults to today"`
}

func (a *AddCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(a.FigurePath); err != nil {
		return errors.ValidationError("figure not found").
			WithCause(err).
			WithContext("path", a.FigurePath).
			Build()
	}
	if a.Date != "" {
		if _, err := time.Parse(registry.DateLayout, a.Date); err != nil {
			return errors.ValidationError("invalid --date, expected YYYY-MM-DD").
				WithContext("date", a.Date).
				Build()
		}
	}

	res, err := registry.NewStore(cfg.Registry).Add(registry.AddRequest{
		FigurePath: a.FigurePath,
		Topic:      a.Topic,
		Title:      a.Title,
		Caption:    a.Caption,
		Notes:      a.Notes,
		Tags:       splitTags(a.Tags),
		Copy:       a.Copy,
		FiguresDir: cfg.FiguresDir,
		Created:    a.Date,
	})
	if err != nil {
		return err
	}

	s := res.Slide
	if res.CopiedFrom != "" {
		g.printf("Copied %s -> %s\n", res.CopiedFrom, s.Figure)
	}
	g.printf("Added slide: %s\n", s.Title)
	g.printf("  ID: %s\n", s.ID)
	g.printf("  Topic: %s\n", s.Topic)
	g.printf("  Figure: %s\n", s.Figure)
	if s.Caption != "" {
		g.printf("  Caption: %s\n", s.Caption)
	}
	g.printf("  Created: %s\n", s.Created)
	if len(s.Tags) > 0 {
		g.printf("  Tags: %s\n", strings.Join(s.Tags, ", "))
	}
	g.println("\nRun 'slidedeck build' to regenerate QMD files.")
	return nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
