package advisor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/reit"
	"google.golang.org/genai"
)

func newMarket(t *testing.T) *reit.Market {
	t.Helper()
	m := reit.NewMarket(reit.NewChain())
	if _, err := m.List("Main St", reit.R(1_000_000)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Open("alice", reit.R(1000)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Buy("alice", "Main St", 10); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(newMarket(t)))

	testCases := []struct {
		name    string
		args    map[string]any
		want    string // expected in the output
		wantErr string // expected in the error
	}{
		{name: "Market", want: "Main St"},
		{name: "Market", want: "alice"},
		{name: "Portfolio", args: map[string]any{"account": "alice"}, want: "## Owned Shares"},
		{name: "Portfolio", args: map[string]any{"account": "bob"}, wantErr: "account not found"},
		{name: "Portfolio", wantErr: `missing argument "account"`},
		{name: "Quote", args: map[string]any{"property": "Main St", "shares": 10.0, "side": "sell"}, want: "Total: **98.000 REIT**"},
		{name: "Quote", args: map[string]any{"property": "Main St", "shares": 1.5, "side": "buy"}, wantErr: "whole number"},
		{name: "Quote", args: map[string]any{"property": "Main St", "shares": 1.0, "side": "hold"}, wantErr: "cannot quote"},
		{name: "Chain", want: "4 blocks."},
		{name: "Chain", args: map[string]any{"path": "$[1].payload"}, want: `"New property listed: Main St with total price 1,000,000.000 REIT"`},
		{name: "Chain", args: map[string]any{"path": "$[?("}, wantErr: "cannot evaluate"},
		{name: "Mint", wantErr: "unknown function Mint"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: tc.name, Args: tc.args})
			if resp.ID != "1" || resp.Name != tc.name {
				t.Errorf("response %s/%s does not answer the call", resp.ID, resp.Name)
			}
			if tc.wantErr != "" {
				got, _ := resp.Response["error"].(string)
				if !strings.Contains(got, tc.wantErr) {
					t.Errorf("error = %q, want %q", got, tc.wantErr)
				}
				return
			}
			got, _ := resp.Response["output"].(string)
			if !strings.Contains(got, tc.want) {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestForMarket_Declarations(t *testing.T) {
	a := ForMarket(&bytes.Buffer{}, strings.NewReader(""), "some-model", newMarket(t))

	var names []string
	for _, d := range a.Facilitator.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "Broker,Auditor" {
		t.Errorf("facilitator tools = %s", got)
	}
	if a.Facilitator.ModelName != "some-model" {
		t.Errorf("ModelName = %q", a.Facilitator.ModelName)
	}
	parts := a.Facilitator.Config.SystemInstruction.Parts
	if len(parts) != 2 || !strings.Contains(parts[1].Text, "Main St") {
		t.Errorf("facilitator is not briefed: %v", parts)
	}
	if d := a.Experts[0].Declaration(); d.Parameters.Required[0] != "question" {
		t.Errorf("expert declaration = %+v", d)
	}
}

func TestExpert_NotStarted(t *testing.T) {
	e := NewAuditor(DefaultModel, newMarket(t))
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hello"}); !errors.Is(err, errNotStarted) {
		t.Errorf("Ask() error = %v, want %v", err, errNotStarted)
	}
	resp := e.Call(context.Background(), "7", map[string]any{"question": "hello"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() = %v, want an error", resp.Response)
	}
}

func TestAgent_Run(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		prompts []string
	}{
		{"bye prompt", "", []string{"", "bye"}},
		{"bye typed", "\n  bye\n", nil},
		{"end of input", "", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			a := New(&out, strings.NewReader(tc.input))
			if err := a.Run(context.Background(), tc.prompts...); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !strings.HasPrefix(out.String(), "Welcome") || !strings.Contains(out.String(), prompt) {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestBriefing(t *testing.T) {
	m := newMarket(t)
	got := Briefing(m)
	for _, want := range []string{"currency REIT", "| Main St |", "| alice |", "Chain of 4 blocks verified"} {
		if !strings.Contains(got, want) {
			t.Errorf("Briefing() does not contain %q:\n%s", want, got)
		}
	}
}
