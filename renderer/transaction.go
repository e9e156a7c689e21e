package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/reit"
	"github.com/shopspring/decimal"
)

// Receipt renders a completed trade.
func Receipt(r reit.Receipt) string {
	return fmt.Sprintf("%s\n\nRecorded in block %d `%s`.\n", r, r.Block.Index(), shortHash(r.Block.Hash()))
}

// Quote is the price of a hypothetical trade.
type Quote struct {
	Property  *reit.Property
	Command   reit.CommandType // reit.CmdBuy or reit.CmdSell
	Remaining int64            // Remaining is the supply before the trade.
	Shares    int64
	Amount    reit.Money
}

// NewQuote prices a trade of shares against p, starting from remaining.
func NewQuote(p *reit.Property, cmd reit.CommandType, remaining, shares int64) (Quote, error) {
	q := Quote{Property: p, Command: cmd, Remaining: remaining, Shares: shares}
	var err error
	switch cmd {
	case reit.CmdBuy:
		q.Amount, err = p.CostOfBuying(remaining, shares)
	case reit.CmdSell:
		q.Amount, err = p.ProceedsOfSelling(remaining, shares)
	default:
		err = fmt.Errorf("cannot quote a %q command", cmd)
	}
	return q, err
}

// QuoteMarkdown renders a quote.
func QuoteMarkdown(q Quote) string {
	after := q.Remaining - q.Shares
	verb := "Buying"
	if q.Command == reit.CmdSell {
		after = q.Remaining + q.Shares
		verb = "Selling"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Quote\n\n")
	fmt.Fprintf(&b, "%s %d shares of a property valued %s, with %d shares remaining.\n\n", verb, q.Shares, q.Property.Value(), q.Remaining)
	fmt.Fprintln(&b, "| | Remaining | Price |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	fmt.Fprintf(&b, "| Before | %d | %s |\n", q.Remaining, q.Property.PriceAt(q.Remaining))
	fmt.Fprintf(&b, "| After | %d | %s |\n", after, q.Property.PriceAt(after))
	fmt.Fprintf(&b, "\nTotal: **%s**, average price per share %s.\n", q.Amount, average(q.Amount, q.Shares))
	return b.String()
}

func average(m reit.Money, n int64) reit.Money {
	return reit.M(m.Decimal().Div(decimal.NewFromInt(n)), m.Currency())
}
