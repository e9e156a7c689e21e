// Package cmd implements the CLI application of the property share market.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/reit"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&shellCmd{}, "market")
	c.Register(&runCmd{}, "market")
	c.Register(&quoteCmd{}, "market")
	c.Register(&portfolioCmd{}, "market")

	c.Register(&chainCmd{}, "audit")
	c.Register(&queryCmd{}, "audit")

	c.Register(&assistCmd{}, "assist")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var raw = flag.Bool("raw", false, "print markdown as is, without terminal rendering")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// settings reads the environment once.
var settings = sync.OnceValues(LoadConfig)

// printMarkdown renders md for the terminal, or prints it raw when asked to
// or when it cannot be rendered.
func printMarkdown(md string) {
	conf, err := settings()
	if err != nil {
		log.Printf("invalid environment, printing raw markdown: %v", err)
		*raw = true
	}
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := renderMarkdown(conf, md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}

func renderMarkdown(conf Config, md string) (string, error) {
	style := glamour.WithAutoStyle()
	if conf.Style != "auto" {
		style = glamour.WithStandardStyle(conf.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(conf.Width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// newMarket creates an empty market in the configured currency.
func newMarket() (*reit.Market, error) {
	conf, err := settings()
	if err != nil {
		return nil, err
	}
	return reit.NewMarketIn(reit.NewChain(), conf.Currency), nil
}

// loadMarket replays the orders found in filename into a new market.
func loadMarket(filename string) (*reit.Market, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open orders file %q: %w", filename, err)
	}
	defer f.Close()

	orders, err := reit.DecodeOrders(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode orders file %q: %w", filename, err)
	}
	m, err := newMarket()
	if err != nil {
		return nil, err
	}
	if err := m.Replay(orders); err != nil {
		return nil, fmt.Errorf("could not replay %q: %w", filename, err)
	}
	log.Printf("replay-orders file=%q orders=%d blocks=%d", filename, len(orders), m.Chain().Len())
	return m, nil
}

// exportChain writes the chain of m into filename, replacing it.
func exportChain(filename string, m *reit.Market) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create chain file %q: %w", filename, err)
	}
	if err := reit.EncodeChain(f, m.Chain()); err != nil {
		f.Close()
		return fmt.Errorf("could not write chain file %q: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("create-chain-file name=%q blocks=%d", filename, m.Chain().Len())
	return nil
}

// decodeChain reads and verifies an exported chain.
func decodeChain(filename string) (*reit.Chain, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open chain file %q: %w", filename, err)
	}
	defer f.Close()
	c, err := reit.DecodeChain(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode chain file %q: %w", filename, err)
	}
	return c, nil
}

// failure prints err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
