package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	Reveal    RevealCmd    `cmd:"" help:"Reveal cards until a tagged card appears"`
	Streak    StreakCmd    `cmd:"" help:"Measure the run of permanents on top of the library"`
	Diversity DiversityCmd `cmd:"" help:"Count distinct categories in a fixed reveal"`
	Chain     ChainCmd     `cmd:"" help:"Simulate chained discovery triggers"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("deck-sim"),
		kong.Description("Monte Carlo simulators for library reveal and discovery processes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := log.New(os.Stderr)
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
