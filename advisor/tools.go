package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/reit"
	"github.com/etnz/reit/docs"
	"github.com/etnz/reit/renderer"
	"google.golang.org/genai"
)

// Tools returns the functions reading m that a model can call.
func Tools(m *reit.Market) []Function {
	return []Function{marketTool(m), portfolioTool(m), quoteTool(m), chainTool(m)}
}

func marketTool(m *reit.Market) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Market",
			Description: "Market lists every property with its value, sold shares, spot price and price bounds, then every account with its balance.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Two markdown tables: properties and accounts.",
			},
		},
		Func: func(context.Context, map[string]any) (string, error) {
			return renderer.MarketMarkdown(m) + "\n" + renderer.AccountsMarkdown(m), nil
		},
	}
}

func portfolioTool(m *reit.Market) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Portfolio",
			Description: "Portfolio details one account: its balance and the shares it owns with their spot and liquidation values.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account": {Type: genai.TypeString, Description: "The account name."},
				},
				Required: []string{"account"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown portfolio."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "account")
			if err != nil {
				return "", err
			}
			a, err := m.Account(name)
			if err != nil {
				return "", err
			}
			return renderer.PortfolioMarkdown(a, m), nil
		},
	}
}

func quoteTool(m *reit.Market) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Quote",
			Description: "Quote prices buying or selling shares of a property at the current supply, without trading.\n\n" + docs.MustTopic("pricing"),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"property": {Type: genai.TypeString, Description: "The property name."},
					"shares":   {Type: genai.TypeInteger, Description: "The number of shares, at least 1."},
					"side":     {Type: genai.TypeString, Enum: []string{"buy", "sell"}, Description: "Whether the shares are bought or sold."},
				},
				Required: []string{"property", "shares", "side"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown quote."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "property")
			if err != nil {
				return "", err
			}
			shares, err := intArg(args, "shares")
			if err != nil {
				return "", err
			}
			side, err := stringArg(args, "side")
			if err != nil {
				return "", err
			}
			p, err := m.Property(name)
			if err != nil {
				return "", err
			}
			q, err := renderer.NewQuote(p, reit.CommandType(side), p.Remaining(), shares)
			if err != nil {
				return "", err
			}
			return renderer.QuoteMarkdown(q), nil
		},
	}
}

func chainTool(m *reit.Market) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Chain",
			Description: `Chain reads the hash-chained ledger of every market event.
			Without a path it returns the whole chain and its verification.
			With a JSONPath it evaluates it against the array of blocks.

			` + docs.MustTopic("chain"),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"path": {Type: genai.TypeString, Description: `A JSONPath like $[?(@.index > 3)].payload`},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "Markdown, or the JSON result of the path."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			c := m.Chain()
			if _, ok := args["path"]; !ok {
				return renderer.ChainMarkdown(c.All(), true) + "\n" + renderer.VerificationMarkdown(c, c.Verify()), nil
			}
			path, err := stringArg(args, "path")
			if err != nil {
				return "", err
			}
			v, err := c.Query(path)
			if err != nil {
				return "", fmt.Errorf("cannot evaluate %q: %w", path, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}
}
