package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reit/renderer"
	"github.com/google/subcommands"
)

// chainCmd verifies and displays an exported chain.
type chainCmd struct {
	full bool
}

func (*chainCmd) Name() string     { return "chain" }
func (*chainCmd) Synopsis() string { return "verify and display an exported chain" }
func (*chainCmd) Usage() string {
	return `rcs chain [-full] <chain.jsonl>

  Decodes a chain exported by 'run' or 'shell', checks every hash and link,
  and displays its blocks. A tampered file is reported with the index of
  the first broken block.
`
}

func (c *chainCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.full, "full", false, "display full hashes")
}

func (c *chainCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "chain expects exactly one chain file")
		return subcommands.ExitUsageError
	}
	ch, err := decodeChain(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.ChainMarkdown(ch.All(), c.full) + "\n" + renderer.VerificationMarkdown(ch, nil))
	return subcommands.ExitSuccess
}
