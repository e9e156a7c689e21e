package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/reit"
	"github.com/etnz/reit/renderer"
	"github.com/google/subcommands"
	"github.com/pterm/pterm"
)

// Menu entries of the shell.
const (
	menuCreateUser    = "Create New User"
	menuListProperty  = "Create New Property Listing"
	menuBuy           = "Buy Shares"
	menuSell          = "Sell Shares"
	menuViewPortfolio = "View User Portfolio"
	menuViewMarket    = "View Market"
	menuViewChain     = "View Blockchain"
	menuExit          = "Exit"
)

var menu = []string{
	menuCreateUser,
	menuListProperty,
	menuBuy,
	menuSell,
	menuViewPortfolio,
	menuViewMarket,
	menuViewChain,
	menuExit,
}

// prompter is the interactive terminal used by the shell.
type prompter interface {
	Select(text string, options []string) (string, error)
	Input(text string) (string, error)
	Success(msg string)
	Failure(msg string)
}

// ptermPrompter prompts on the terminal.
type ptermPrompter struct{}

func (ptermPrompter) Select(text string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).WithMaxHeight(len(options)).Show()
}

func (ptermPrompter) Input(text string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(text).Show()
}

func (ptermPrompter) Success(msg string) { pterm.Success.Println(msg) }
func (ptermPrompter) Failure(msg string) { pterm.Error.Println(msg) }

// session is one interactive run of the shell over a market.
type session struct {
	m      *reit.Market
	p      prompter
	show   func(md string)
	record io.Writer // record receives every executed order, when not nil.
}

// run loops over the menu until exit.
func (s *session) run() error {
	for {
		choice, err := s.p.Select("Select an option", menu)
		if err != nil {
			return err
		}
		if choice == menuExit {
			return nil
		}
		if err := s.step(choice); err != nil {
			return err
		}
	}
}

// step executes one menu entry. Invalid inputs and rejected orders are
// reported and do not stop the session.
func (s *session) step(choice string) error {
	switch choice {
	case menuCreateUser:
		return s.createUser()
	case menuListProperty:
		return s.listProperty()
	case menuBuy:
		return s.trade(reit.CmdBuy)
	case menuSell:
		return s.trade(reit.CmdSell)
	case menuViewPortfolio:
		name, err := s.p.Input("Enter user name to view portfolio")
		if err != nil {
			return err
		}
		a, err := s.m.Account(strings.TrimSpace(name))
		if err != nil {
			s.p.Failure(explain(err))
			return nil
		}
		s.show(renderer.PortfolioMarkdown(a, s.m))
	case menuViewMarket:
		s.show(renderer.MarketMarkdown(s.m) + "\n" + renderer.AccountsMarkdown(s.m))
	case menuViewChain:
		c := s.m.Chain()
		s.show(renderer.ChainMarkdown(c.All(), false) + "\n" + renderer.VerificationMarkdown(c, c.Verify()))
	default:
		return fmt.Errorf("unknown menu entry %q", choice)
	}
	return nil
}

func (s *session) createUser() error {
	name, err := s.p.Input("Enter user name")
	if err != nil {
		return err
	}
	balance, ok, err := s.amount("Enter starting balance")
	if err != nil || !ok {
		return err
	}
	o := reit.Open{Account: strings.TrimSpace(name), Balance: balance}
	a, err := s.m.Open(o.Account, o.Balance)
	if err != nil {
		s.p.Failure(explain(err))
		return nil
	}
	s.p.Success(fmt.Sprintf("User %s created with %s.", a.Name(), a.Balance()))
	return s.save(o)
}

func (s *session) listProperty() error {
	name, err := s.p.Input("Enter property name or address")
	if err != nil {
		return err
	}
	value, ok, err := s.amount("Enter total property price")
	if err != nil || !ok {
		return err
	}
	o := reit.List{Property: strings.TrimSpace(name), Value: value}
	p, err := s.m.List(o.Property, o.Value)
	if err != nil {
		s.p.Failure(explain(err))
		return nil
	}
	s.p.Success(fmt.Sprintf("Property %s listed with total price %s. A share costs %s.", p.Name(), p.Value(), p.Price()))
	return s.save(o)
}

func (s *session) trade(cmd reit.CommandType) error {
	account, err := s.p.Input("Enter your name")
	if err != nil {
		return err
	}
	property, err := s.p.Input("Enter property name")
	if err != nil {
		return err
	}
	text, err := s.p.Input(fmt.Sprintf("Enter number of shares to %s", cmd))
	if err != nil {
		return err
	}
	shares, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		s.p.Failure(fmt.Sprintf("%q is not a whole number of shares.", text))
		return nil
	}
	account, property = strings.TrimSpace(account), strings.TrimSpace(property)

	var o reit.Order
	var r reit.Receipt
	if cmd == reit.CmdBuy {
		o = reit.Buy{Account: account, Property: property, Shares: shares}
		r, err = s.m.Buy(account, property, shares)
	} else {
		o = reit.Sell{Account: account, Property: property, Shares: shares}
		r, err = s.m.Sell(account, property, shares)
	}
	if err != nil {
		s.p.Failure("Transaction failed: " + explain(err))
		return nil
	}
	s.p.Success(strings.TrimSpace(renderer.Receipt(r)))
	return s.save(o)
}

// amount asks for an amount in the market currency; ok is false when the
// user typed something else.
func (s *session) amount(text string) (m reit.Money, ok bool, err error) {
	in, err := s.p.Input(text)
	if err != nil {
		return m, false, err
	}
	m, err = reit.ParseMoney(strings.TrimSpace(in), s.m.Currency())
	if err != nil {
		s.p.Failure(fmt.Sprintf("%q is not an amount.", in))
		return m, false, nil
	}
	return m, true, nil
}

func (s *session) save(o reit.Order) error {
	if s.record == nil {
		return nil
	}
	if err := reit.EncodeOrder(s.record, o); err != nil {
		return fmt.Errorf("could not record order: %w", err)
	}
	return nil
}

// explain turns a market error into a hint for the shell user.
func explain(err error) string {
	switch {
	case errors.Is(err, reit.ErrAccountNotFound):
		return fmt.Sprintf("%v. Create a user first.", err)
	case errors.Is(err, reit.ErrPropertyNotFound):
		return fmt.Sprintf("%v. Create a listing first.", err)
	}
	return err.Error()
}

// shellCmd is the interactive market.
type shellCmd struct {
	record string
	export string
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "trade property shares interactively" }
func (*shellCmd) Usage() string {
	return `rcs shell [-record <orders.jsonl>] [-export <chain.jsonl>] [<orders.jsonl>]

  Opens a menu to create users, list properties, buy and sell shares and
  view portfolios and the chain. An optional orders file is replayed first.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.record, "record", "", "append every executed order to this JSONL file")
	f.StringVar(&c.export, "export", "", "write the chain into this JSONL file on exit")
}

func (c *shellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var m *reit.Market
	var err error
	switch f.NArg() {
	case 0:
		m, err = newMarket()
	case 1:
		m, err = loadMarket(f.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "shell accepts at most one orders file")
		return subcommands.ExitUsageError
	}
	if err != nil {
		return failure(err)
	}

	s := &session{m: m, p: ptermPrompter{}, show: printMarkdown}
	if c.record != "" {
		rec, err := os.OpenFile(c.record, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return failure(fmt.Errorf("could not open orders file %q: %w", c.record, err))
		}
		defer rec.Close()
		s.record = rec
	}

	pterm.DefaultHeader.WithFullWidth().Println("Real estate shares market")
	runErr := s.run()
	if c.export != "" {
		if err := exportChain(c.export, m); err != nil {
			return failure(err)
		}
	}
	if runErr != nil {
		return failure(runErr)
	}
	return subcommands.ExitSuccess
}
