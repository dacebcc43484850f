package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Debug    bool   `help:"Enable debug logging"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands between configured bots"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate the best hand from hole and board cards"`
	Odds     OddsCmd          `cmd:"" help:"Estimate a hand's equity against random opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Measure a bot against others over duplicate hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em engine: bot tables, hand evaluation and equity"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		disableColor()
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
