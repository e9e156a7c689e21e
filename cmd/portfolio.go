package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reit/renderer"
	"github.com/google/subcommands"
)

// portfolioCmd displays one account after replaying orders.
type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the balance and shares of an account" }
func (*portfolioCmd) Usage() string {
	return `rcs portfolio <orders.jsonl> <account>

  Replays the orders file and displays the account's balance and owned
  shares, valued at the spot price and at the price a sale would fetch.
`
}

func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "portfolio expects an orders file and an account")
		return subcommands.ExitUsageError
	}
	m, err := loadMarket(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	a, err := m.Account(f.Arg(1))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.PortfolioMarkdown(a, m))
	return subcommands.ExitSuccess
}
