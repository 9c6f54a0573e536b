package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play heads-up against the bot (default)"`
	History HistoryCmd       `cmd:"" help:"Print the hands of a PHH session file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("headsup"),
		kong.Description("Heads-up simplified Texas Hold'em against a scripted bot"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
