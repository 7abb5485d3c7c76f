// Command portfolioctl prints portfolio reports and manages the data of a
// Portfolio Pro database from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&holdingsCmd{}, "reports")
	commander.Register(&allocationCmd{}, "reports")
	commander.Register(&netWorthCmd{}, "reports")
	commander.Register(&flowsCmd{}, "reports")

	commander.Register(&exportCmd{}, "data")
	commander.Register(&importCmd{}, "data")
	commander.Register(&backupCmd{}, "data")
	commander.Register(&restoreCmd{}, "data")
	commander.Register(&clearCmd{}, "data")
	commander.Register(&keygenCmd{}, "data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
