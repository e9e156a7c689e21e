package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// queryCmd evaluates a JSONPath over an exported chain.
type queryCmd struct {
	indent bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over an exported chain" }
func (*queryCmd) Usage() string {
	return `rcs query [-indent] <chain.jsonl> <path>

  Evaluates the JSONPath against the array of blocks of a verified chain
  and prints the result as JSON. Blocks have the fields index,
  previousHash, payload, timestamp and hash.

  Example:

    rcs query chain.jsonl '$[?(@.index > 2)].payload'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.indent, "indent", false, "indent the JSON result")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "query expects a chain file and a path")
		return subcommands.ExitUsageError
	}
	ch, err := decodeChain(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	v, err := ch.Query(f.Arg(1))
	if err != nil {
		return failure(fmt.Errorf("cannot evaluate %q: %w", f.Arg(1), err))
	}
	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	if c.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
