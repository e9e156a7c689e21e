package reit

import (
	"fmt"

	"github.com/google/uuid"
)

// CommandType is a typed string for identifying market commands.
type CommandType string

// Command types used for identifying orders and receipts.
const (
	CmdOpen CommandType = "open"
	CmdList CommandType = "list"
	CmdBuy  CommandType = "buy"
	CmdSell CommandType = "sell"
)

// Receipt describes a completed trade.
type Receipt struct {
	ID        uuid.UUID
	Command   CommandType // CmdBuy or CmdSell
	Account   string
	Property  string
	Shares    int64
	Amount    Money // Amount is the total cost of a buy or the proceeds of a sell.
	Price     Money // Price is the spot price per share after the trade.
	Remaining int64 // Remaining is the property's remaining shares after the trade.
	Block     Block // Block is the chain record of the trade.
}

// payload is the text recorded in the chain for this trade.
func (r Receipt) payload() string {
	verb := "bought"
	if r.Command == CmdSell {
		verb = "sold"
	}
	return fmt.Sprintf("%s %s %d shares of %s for %s (trade %s)", r.Account, verb, r.Shares, r.Property, r.Amount, r.ID)
}

// String returns a human readable summary of the trade and of the market after it.
func (r Receipt) String() string {
	verb := "bought"
	if r.Command == CmdSell {
		verb = "sold"
	}
	return fmt.Sprintf("%s %s %d shares for %s. The current price per share is now %s. %d shares remaining.",
		r.Account, verb, r.Shares, r.Amount, r.Price, r.Remaining)
}
