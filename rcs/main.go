// Command rcs trades fractional shares of real estate properties recorded in
// a hash-chained ledger.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/reit/cmd"
	"github.com/google/subcommands"
)

func main() {
	log.SetFlags(0)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell to complete a command line.
	cmd.Completion(commander).Complete("rcs")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
