package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/reit/advisor"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about a market"
}
func (*assistCmd) Usage() string {
	return `rcs assist <orders.jsonl> [question...]

  Replays the orders file, then starts a chat about the resulting market.
  The optional question is asked first. Type 'bye' to exit.

  Requires GEMINI_API_KEY. The model is set with REIT_ASSIST_MODEL.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "assist expects an orders file")
		return subcommands.ExitUsageError
	}
	conf, err := settings()
	if err != nil {
		return failure(err)
	}
	if conf.APIKey == "" {
		return failure(fmt.Errorf("GEMINI_API_KEY is not set"))
	}
	m, err := loadMarket(f.Arg(0))
	if err != nil {
		return failure(err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: conf.APIKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return failure(fmt.Errorf("cannot initialize Gemini's client: %w", err))
	}

	a := advisor.ForMarket(os.Stdout, os.Stdin, conf.Model, m)
	if err := a.Start(ctx, client); err != nil {
		return failure(err)
	}
	if err := a.Run(ctx, strings.Join(f.Args()[1:], " ")); err != nil {
		return failure(fmt.Errorf("agent failed: %w", err))
	}
	return subcommands.ExitSuccess
}
