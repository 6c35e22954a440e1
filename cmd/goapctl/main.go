package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/goapcore/goap/internal/commands"
)

var CLI struct {
	Config   commands.ConfigCommand   `cmd:"" help:"Manage configuration"`
	Validate commands.ValidateCommand `cmd:"" help:"Validate an action catalog"`
	Estimate commands.EstimateCommand `cmd:"" help:"Estimate a lower-cost bound and search budget"`
	Plan     commands.PlanCommand     `cmd:"" help:"Run calculate over a catalog/start/goal triple"`
	Doctor   commands.DoctorCommand   `cmd:"" help:"Run configuration diagnostics"`
}

const banner = `
  __ _  ___   __ _ _ __   ___| |_| |
 / _' |/ _ \ / _' | '_ \ / __| __| |
| (_| | (_) | (_| | |_) | (__| |_| |
 \__, |\___/ \__,_| .__/ \___|\__|_|
 |___/            |_|

Goal-Oriented Action Planning, from the command line
`

func main() {
	log.SetLevel(log.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("goapctl"),
		kong.Description("goapctl - a command-line front end for a GOAP planner.\n\nValidate action catalogs, estimate search cost, and run calculate over them."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	if ctx.Command() == "" {
		fmt.Print(banner)
		fmt.Println("quick start:")
		fmt.Println("  $ goapctl config init                        # create a config file")
		fmt.Println("  $ goapctl doctor                             # verify setup")
		fmt.Println("  $ goapctl validate catalog.yaml               # check an action catalog")
		fmt.Println("  $ goapctl estimate catalog.yaml start.yaml goal.yaml  # see a cost estimate")
		fmt.Println("  $ goapctl plan catalog.yaml start.yaml goal.yaml      # run calculate")
		fmt.Println()
		fmt.Println("run 'goapctl --help' for all commands")
		os.Exit(0)
	}

	if err := ctx.Run(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
