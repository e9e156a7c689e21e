package cmd

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/reit"
)

// script answers the shell prompts in order.
type script struct {
	answers   []string
	successes []string
	failures  []string
}

func (s *script) next() (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *script) Select(_ string, options []string) (string, error) {
	a, err := s.next()
	if err == nil && !slices.Contains(options, a) {
		return "", errors.New("not an option: " + a)
	}
	return a, err
}

func (s *script) Input(string) (string, error) { return s.next() }
func (s *script) Success(msg string)           { s.successes = append(s.successes, msg) }
func (s *script) Failure(msg string)           { s.failures = append(s.failures, msg) }

func TestSession(t *testing.T) {
	p := &script{answers: []string{
		menuCreateUser, "alice", "1000",
		menuListProperty, " Main St ", "1000000",
		menuBuy, "alice", "Main St", "10",
		menuSell, "alice", "Main St", "4",
		menuBuy, "bob", "Main St", "1",
		menuBuy, "alice", "Main St", "ten",
		menuCreateUser, "carol", "a lot",
		menuViewPortfolio, "alice",
		menuViewMarket,
		menuViewChain,
		menuExit,
	}}
	var shown []string
	var record bytes.Buffer
	m := reit.NewMarket(reit.NewChain())
	s := &session{m: m, p: p, show: func(md string) { shown = append(shown, md) }, record: &record}

	if err := s.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(p.successes) != 4 {
		t.Errorf("successes = %q", p.successes)
	}
	if want := "alice bought 10 shares for 98.000 REIT."; !strings.HasPrefix(p.successes[2], want) {
		t.Errorf("buy message = %q, want prefix %q", p.successes[2], want)
	}
	if want := "Recorded in block 3 `"; !strings.Contains(p.successes[2], want) {
		t.Errorf("buy message = %q, want the block %q", p.successes[2], want)
	}
	if len(p.failures) != 3 || !strings.Contains(p.failures[0], "Create a user first") {
		t.Errorf("failures = %q", p.failures)
	}
	if m.Chain().Len() != 5 {
		t.Errorf("chain has %d blocks, want 5", m.Chain().Len())
	}
	if len(shown) != 3 || !strings.HasPrefix(shown[0], "# alice") || !strings.HasPrefix(shown[2], "# Chain") {
		t.Errorf("shown = %q", shown)
	}

	// the record replays into the same market.
	orders, err := reit.DecodeOrders(&record)
	if err != nil {
		t.Fatalf("DecodeOrders() error = %v", err)
	}
	replayed := reit.NewMarket(reit.NewChain())
	if err := replayed.Replay(orders); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	want, _ := m.Account("alice")
	got, _ := replayed.Account("alice")
	if !got.Balance().Equal(want.Balance()) || got.Holding("Main St") != 6 {
		t.Errorf("replayed alice = %v, %d shares", got.Balance(), got.Holding("Main St"))
	}
}

func TestSession_EndOfInput(t *testing.T) {
	p := &script{answers: []string{menuCreateUser, "alice"}}
	s := &session{m: reit.NewMarket(reit.NewChain()), p: p, show: func(string) {}}
	if err := s.run(); !errors.Is(err, io.EOF) {
		t.Errorf("run() error = %v, want %v", err, io.EOF)
	}
}
