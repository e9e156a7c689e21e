package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/reit"
)

// MarketMarkdown renders listed properties with their current pricing.
func MarketMarkdown(m *reit.Market) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Market\n\n")
	listed := false
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Property | Value | Sold | Remaining | Price | Floor | Ceiling |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|---:|")
		for p := range m.Properties() {
			fmt.Fprintf(w, "| %s | %s | %d | %d | %s | %s | %s |\n",
				cell(p.Name()), p.Value(), p.Sold(), p.Remaining(), p.Price(), p.Floor(), p.Ceiling())
			listed = true
		}
		return listed
	})
	if !listed {
		fmt.Fprintln(&b, "No property listed.")
	}
	return b.String()
}

// AccountsMarkdown renders a one line summary per account.
func AccountsMarkdown(m *reit.Market) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")
	fmt.Fprintln(&b, "| Account | Balance | Properties | Shares |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for a := range m.Accounts() {
		s := a.Snapshot()
		var shares int64
		for _, n := range s.Holdings {
			shares += n
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", cell(a.Name()), s.Balance, len(s.Holdings), shares)
	}
	return b.String()
}
