package commands

import (
	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Title string `help:"Deck title" default:"Research Figures"`
	Force bool   `help:"Overwrite an existing registry"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if err := registry.Init(cfg.Registry, i.Title, i.Force); err != nil {
		return err
	}
	g.printf("Created %s\n", cfg.Registry)
	g.println("\nRun 'slidedeck add <figure>' to add your first figure.")
	return nil
}
