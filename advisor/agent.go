// Package advisor is a conversational assistant answering questions about a
// market, backed by Gemini models calling tools on the market.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/reit"
	"github.com/etnz/reit/renderer"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Agent is the assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an agent reading the user from r and answering on w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(modelOf(experts), experts...),
	}
}

// ForMarket creates an agent whose experts know m. The facilitator is
// briefed with the state of m when the agent is created.
func ForMarket(w io.Writer, r io.Reader, model string, m *reit.Market) *Agent {
	a := New(w, r, NewBroker(model, m), NewAuditor(model, m))
	si := a.Facilitator.Config.SystemInstruction
	si.Parts = append(si.Parts, &genai.Part{Text: Briefing(m)})
	return a
}

// Briefing summarises m: its properties, its accounts and the state of its
// chain.
func Briefing(m *reit.Market) string {
	c := m.Chain()
	var b strings.Builder
	fmt.Fprintf(&b, "Market briefing, currency %s.\n\n", m.Currency())
	b.WriteString(renderer.MarketMarkdown(m))
	b.WriteString("\n")
	b.WriteString(renderer.AccountsMarkdown(m))
	b.WriteString("\n")
	b.WriteString(renderer.VerificationMarkdown(c, c.Verify()))
	return b.String()
}

// Start opens the chats of all experts.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run is the interactive loop. Prompts are answered first, then the user
// is read until "bye" or the end of input.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Welcome to the REIT market assistant. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			line, err := a.r.ReadString('\n')
			if err == io.EOF && strings.TrimSpace(line) == "" {
				fmt.Fprintln(a.w)
				return nil
			}
			if err != nil && err != io.EOF {
				return err
			}
			input = strings.TrimSpace(line)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text(content))
	}
}

func modelOf(experts []*Expert) string {
	if len(experts) > 0 && experts[0].ModelName != "" {
		return experts[0].ModelName
	}
	return DefaultModel
}

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			The user trades fractional shares of real estate properties. Share prices follow a
			bonding curve: they rise as shares are bought and fall as they are sold.

			Learn about the experts' skills from the Tools and ask them questions.
			They keep the context of your previous questions.
			Devise a plan of questions to the experts and come up with the best response.
			Never invent a figure that an expert did not give you.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewBroker is an expert of prices, properties and accounts.
func NewBroker(model string, m *reit.Market) *Expert {
	lib := []Function{marketTool(m), portfolioTool(m), quoteTool(m)}
	return &Expert{
		Name: "Broker",
		Description: `This is the Broker. It knows every listed property, its spot price and bounds,
		every account with its balance and shares, and can quote a trade before it is made.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools:             []*genai.Tool{{FunctionDeclarations: NewDeclaration(lib)}},
			SystemInstruction: instruction(`You are a broker on a fractional real estate market. Use the Tools to answer with exact figures.`),
		},
		Library: NewLibrary(lib),
	}
}

// NewAuditor is an expert of the chain.
func NewAuditor(model string, m *reit.Market) *Expert {
	lib := []Function{chainTool(m)}
	return &Expert{
		Name: "Auditor",
		Description: `This is the Auditor. It reads the tamper-evident chain of every market event:
		listings, account openings and trades, in order and with their timestamps.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools:             []*genai.Tool{{FunctionDeclarations: NewDeclaration(lib)}},
			SystemInstruction: instruction(`You are an auditor of a hash-chained ledger. Quote block indexes when you report an event.`),
		},
		Library: NewLibrary(lib),
	}
}
