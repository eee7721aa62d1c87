package commands

import "git.home.luguber.info/inful/slidedeck/internal/version"

// VersionCmd prints build information.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global, _ *CLI) error {
	g.println(version.String())
	return nil
}
