package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `kong:"help='Log level: debug, info, warn or error (default warn)'"`
	Verbose  bool   `kong:"short='v',help='Debug logging, including every round'"`
	NoColor  bool   `kong:"help='Disable colored output'"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `help:"Show version"`
	Run         RunCmd           `cmd:"" help:"Simulate one player at one table"`
	Batch       BatchCmd         `cmd:"" help:"Simulate many independent players in parallel"`
	Experiments ExperimentsCmd   `cmd:"" help:"Run the experiments defined in an HCL file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("roulettelab"),
		kong.Description("Roulette house edge and betting strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
