package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reit"
	"github.com/etnz/reit/renderer"
	"github.com/google/subcommands"
)

// quoteCmd prices a trade on a property that does not need to be listed.
type quoteCmd struct {
	value     string
	remaining int64
	shares    int64
	sell      bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "price a buy or a sell on the bonding curve" }
func (*quoteCmd) Usage() string {
	return `rcs quote -value <amount> [-remaining <n>] [-shares <n>] [-sell]

  Computes the total cost of buying, or the proceeds of selling, shares of a
  property of the given value when <remaining> of its 100000 shares are
  still available.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.value, "value", "", "total value of the property")
	f.Int64Var(&c.remaining, "remaining", reit.Supply, "remaining shares before the trade")
	f.Int64Var(&c.shares, "shares", 1, "number of shares traded")
	f.BoolVar(&c.sell, "sell", false, "quote a sell instead of a buy")
}

func (c *quoteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := settings()
	if err != nil {
		return failure(err)
	}
	if c.value == "" {
		fmt.Fprintln(os.Stderr, "-value is required")
		return subcommands.ExitUsageError
	}
	if c.remaining < 0 || c.remaining > reit.Supply {
		fmt.Fprintf(os.Stderr, "-remaining must be between 0 and %d\n", reit.Supply)
		return subcommands.ExitUsageError
	}
	value, err := reit.ParseMoney(c.value, conf.Currency)
	if err != nil {
		return failure(err)
	}
	p, err := reit.NewProperty("quote", value)
	if err != nil {
		return failure(err)
	}
	cmd := reit.CmdBuy
	if c.sell {
		cmd = reit.CmdSell
	}
	q, err := renderer.NewQuote(p, cmd, c.remaining, c.shares)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.QuoteMarkdown(q))
	return subcommands.ExitSuccess
}
