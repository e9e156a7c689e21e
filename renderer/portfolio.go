package renderer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/reit"
)

// PortfolioMarkdown renders the balance and holdings of an account.
//
// Holdings are valued twice: at the spot price, and at the proceeds of
// selling them all right now, which is lower since each share sold lowers the
// price of the next one.
func PortfolioMarkdown(a *reit.Account, m *reit.Market) string {
	s := a.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name())
	fmt.Fprintf(&b, "Balance: **%s**\n\n", s.Balance)

	held := false
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Owned Shares\n\n")
		fmt.Fprintln(w, "| Property | Shares | Price | Spot Value | Liquidation Value |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|")
		for _, name := range slices.Sorted(maps.Keys(s.Holdings)) {
			shares := s.Holdings[name]
			p, err := m.Property(name)
			if err != nil {
				fmt.Fprintf(w, "| %s | %d | - | - | - |\n", cell(name), shares)
				held = true
				continue
			}
			liquidation := "-"
			if proceeds, err := p.ProceedsOfSelling(p.Remaining(), shares); err == nil {
				liquidation = proceeds.String()
			}
			fmt.Fprintf(w, "| %s | %d | %s | %s | %s |\n",
				cell(name), shares, p.Price(), p.Price().Mul(shares), liquidation)
			held = true
		}
		return held
	})
	if !held {
		fmt.Fprintln(&b, "No shares owned.")
	}
	return b.String()
}
