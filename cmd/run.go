package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reit/renderer"
	"github.com/google/subcommands"
)

// runCmd replays an orders file.
type runCmd struct {
	export string
	full   bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "replay a file of orders and display the resulting market" }
func (*runCmd) Usage() string {
	return `rcs run [-export <chain.jsonl>] [-full] <orders.jsonl>

  Replays every order of the file in a new market, then displays the
  properties, the accounts and the chain of blocks.

  Each line of the orders file is one JSON order:

    {"command":"list","property":"Main St","amount":1000000,"currency":"REIT"}
    {"command":"open","account":"alice","amount":1000,"currency":"REIT"}
    {"command":"buy","account":"alice","property":"Main St","shares":10}
    {"command":"sell","account":"alice","property":"Main St","shares":4}
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.export, "export", "", "write the resulting chain into this JSONL file")
	f.BoolVar(&c.full, "full", false, "display full hashes")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run expects exactly one orders file")
		return subcommands.ExitUsageError
	}
	m, err := loadMarket(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	if c.export != "" {
		if err := exportChain(c.export, m); err != nil {
			return failure(err)
		}
	}
	printMarkdown(renderer.MarketMarkdown(m) + "\n" + renderer.AccountsMarkdown(m) + "\n" + renderer.ChainMarkdown(m.Chain().All(), c.full))
	return subcommands.ExitSuccess
}
