package renderer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/reit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// table is a markdown table parsed back from a rendered report.
type table struct {
	header []string
	rows   [][]string
}

// parseTables parses markdown the way a terminal renderer would (GFM tables)
// and returns every table found.
func parseTables(t *testing.T, md string) []table {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var tables []table
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var res table
		for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for c := row.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, nodeText(c, source))
			}
			if _, isHeader := row.(*east.TableHeader); isHeader {
				res.header = cells
			} else {
				res.rows = append(res.rows, cells)
			}
		}
		tables = append(tables, res)
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func newMarket(t *testing.T) *reit.Market {
	t.Helper()
	ts := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { ts = ts.Add(time.Second); return ts }
	m := reit.NewMarket(reit.NewChain(reit.WithClock(clock)))
	orders := []reit.Order{
		reit.List{Property: "Main St", Value: reit.R(1_000_000)},
		reit.List{Property: "Pipe | Lane", Value: reit.R(500_000)},
		reit.Open{Account: "alice", Balance: reit.R(1000)},
		reit.Open{Account: "bob", Balance: reit.R(10)},
		reit.Buy{Account: "alice", Property: "Main St", Shares: 10},
	}
	if err := m.Replay(orders); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestChainMarkdown(t *testing.T) {
	m := newMarket(t)
	md := ChainMarkdown(m.Chain().All(), false)

	tables := parseTables(t, md)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1:\n%s", len(tables), md)
	}
	got := tables[0]
	if want := []string{"Index", "Timestamp", "Transaction", "Previous Hash", "Hash"}; strings.Join(got.header, ",") != strings.Join(want, ",") {
		t.Errorf("header = %v, want %v", got.header, want)
	}
	if len(got.rows) != m.Chain().Len() {
		t.Fatalf("got %d rows, want %d", len(got.rows), m.Chain().Len())
	}
	if got.rows[0][2] != "Genesis Block - Welcome" || got.rows[0][3] != "0" {
		t.Errorf("genesis row = %v", got.rows[0])
	}
	// the pipe in the property name must not split the row.
	if listing := got.rows[2][2]; !strings.Contains(listing, "Pipe") || !strings.Contains(listing, "Lane") {
		t.Errorf("listing row = %v", got.rows[2])
	}
	if !strings.HasSuffix(md, "6 blocks.\n") {
		t.Errorf("missing block count:\n%s", md)
	}
}

func TestMarketMarkdown(t *testing.T) {
	m := newMarket(t)
	tables := parseTables(t, MarketMarkdown(m))
	if len(tables) != 1 || len(tables[0].rows) != 2 {
		t.Fatalf("got %v, want one table of two properties", tables)
	}
	main := tables[0].rows[0]
	if main[0] != "Main St" || main[2] != "10" || main[3] != "99990" || main[5] != "9.800 REIT" || main[6] != "10.200 REIT" {
		t.Errorf("Main St row = %v", main)
	}

	empty := MarketMarkdown(reit.NewMarket(reit.NewChain()))
	if len(parseTables(t, empty)) != 0 || !strings.Contains(empty, "No property listed.") {
		t.Errorf("empty market:\n%s", empty)
	}
}

func TestPortfolioMarkdown(t *testing.T) {
	m := newMarket(t)

	alice, _ := m.Account("alice")
	tables := parseTables(t, PortfolioMarkdown(alice, m))
	if len(tables) != 1 || len(tables[0].rows) != 1 {
		t.Fatalf("got %v, want one holding", tables)
	}
	row := tables[0].rows[0]
	// 10 shares at the spot price 9.80004, sold back for what they cost.
	if row[0] != "Main St" || row[1] != "10" || row[3] != "98.000 REIT" || row[4] != "98.000 REIT" {
		t.Errorf("holding row = %v", row)
	}

	bob, _ := m.Account("bob")
	md := PortfolioMarkdown(bob, m)
	if len(parseTables(t, md)) != 0 || !strings.Contains(md, "No shares owned.") {
		t.Errorf("bob portfolio:\n%s", md)
	}
}

func TestAccountsMarkdown(t *testing.T) {
	m := newMarket(t)
	tables := parseTables(t, AccountsMarkdown(m))
	if len(tables) != 1 || len(tables[0].rows) != 2 {
		t.Fatalf("got %v, want two accounts", tables)
	}
	if row := tables[0].rows[0]; row[0] != "alice" || row[2] != "1" || row[3] != "10" {
		t.Errorf("alice row = %v", row)
	}
}

func TestQuoteMarkdown(t *testing.T) {
	p, err := reit.NewProperty("Main St", reit.R(1_000_000))
	if err != nil {
		t.Fatal(err)
	}
	amount, err := p.CostOfBuying(reit.Supply, 10)
	if err != nil {
		t.Fatal(err)
	}
	md := QuoteMarkdown(Quote{Property: p, Command: reit.CmdBuy, Remaining: reit.Supply, Shares: 10, Amount: amount})
	tables := parseTables(t, md)
	if len(tables) != 1 || len(tables[0].rows) != 2 {
		t.Fatalf("got %v", tables)
	}
	if after := tables[0].rows[1]; after[1] != "99990" {
		t.Errorf("after row = %v", after)
	}
	if !strings.Contains(md, "Total: **98.000 REIT**") {
		t.Errorf("missing total:\n%s", md)
	}
}

func TestVerificationMarkdown(t *testing.T) {
	c := reit.NewChain()
	if md := VerificationMarkdown(c, nil); !strings.Contains(md, c.Last().Hash()) {
		t.Errorf("verified chain does not show its head: %s", md)
	}
	if md := VerificationMarkdown(c, reit.ErrBrokenChain); !strings.Contains(md, "broken") {
		t.Errorf("broken chain: %s", md)
	}
}

func TestNewQuote(t *testing.T) {
	p, err := reit.NewProperty("Main St", reit.R(1_000_000))
	if err != nil {
		t.Fatal(err)
	}
	testCases := []struct {
		name      string
		cmd       reit.CommandType
		remaining int64
		shares    int64
		wantErr   error
	}{
		{"buy", reit.CmdBuy, reit.Supply, 10, nil},
		{"sell", reit.CmdSell, reit.Supply - 10, 10, nil},
		{"sell above supply", reit.CmdSell, reit.Supply, 1, reit.ErrSupplyExceeded},
		{"buy nothing", reit.CmdBuy, reit.Supply, 0, reit.ErrInvalidShareCount},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewQuote(p, tc.cmd, tc.remaining, tc.shares)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewQuote() error = %v, want %v", err, tc.wantErr)
			}
			if err == nil && q.Amount.String() != "98.000 REIT" {
				t.Errorf("Amount = %v, want 98.000 REIT", q.Amount)
			}
		})
	}
	if _, err := NewQuote(p, reit.CmdOpen, reit.Supply, 1); err == nil {
		t.Errorf("NewQuote() of an open command should fail")
	}
}

func TestReceipt(t *testing.T) {
	m := newMarket(t)
	r, err := m.Sell("alice", "Main St", 4)
	if err != nil {
		t.Fatal(err)
	}
	got := Receipt(r)
	if !strings.HasPrefix(got, "alice sold 4 shares for ") {
		t.Errorf("Receipt() = %q", got)
	}
	if want := "Recorded in block 6 `" + r.Block.Hash()[:12] + "`."; !strings.Contains(got, want) {
		t.Errorf("Receipt() = %q, want %q", got, want)
	}
}
