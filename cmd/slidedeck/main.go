package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/slidedeck/cmd/slidedeck/commands"
	"git.home.luguber.info/inful/slidedeck/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("slidedeck"),
		kong.Description("Manage research slide decks."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := parser.Run(commands.NewGlobal(), cli)
	os.Exit(commands.ExitCode(err, cli.Verbose))
}
