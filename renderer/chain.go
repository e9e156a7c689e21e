package renderer

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/etnz/reit"
)

// ChainMarkdown renders every block of the chain, in chain order.
func ChainMarkdown(blocks iter.Seq[reit.Block], full bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Chain\n\n")
	fmt.Fprintln(&b, "| Index | Timestamp | Transaction | Previous Hash | Hash |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|:---|")
	n := 0
	for blk := range blocks {
		prev, hash := blk.PrevHash(), blk.Hash()
		if !full {
			prev, hash = shortHash(prev), shortHash(hash)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | `%s` | `%s` |\n",
			blk.Index(),
			blk.Timestamp().Format(time.DateTime),
			cell(blk.Payload()),
			prev,
			hash,
		)
		n++
	}
	fmt.Fprintf(&b, "\n%d blocks.\n", n)
	return b.String()
}

// VerificationMarkdown renders the result of a chain verification.
func VerificationMarkdown(c *reit.Chain, err error) string {
	if err != nil {
		return fmt.Sprintf("**Chain is broken**: %v\n", err)
	}
	return fmt.Sprintf("Chain of %d blocks verified, head `%s`.\n", c.Len(), c.Last().Hash())
}
