package reit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// amountCmd is a specialized struct to read an amount stored in two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money {
	return M(a.Amount, a.Currency)
}

// DecodeOrders decodes orders from a stream of JSONL data.
func DecodeOrders(r io.Reader) ([]Order, error) {
	var orders []Order
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", line, string(lineBytes), err)
		}

		o, err := decodeOrder(identifier.Command, lineBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		orders = append(orders, o)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return orders, nil
}

func decodeOrder(cmd CommandType, lineBytes []byte) (Order, error) {
	switch cmd {
	case CmdOpen:
		var temp struct {
			amountCmd
			Account string `json:"account"`
		}
		if err := jsonUnmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		return Open{Account: temp.Account, Balance: temp.Money()}, nil
	case CmdList:
		var temp struct {
			amountCmd
			Property string `json:"property"`
		}
		if err := jsonUnmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		return List{Property: temp.Property, Value: temp.Money()}, nil
	case CmdBuy, CmdSell:
		var temp tradeCmd
		if err := jsonUnmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		n, err := temp.shares()
		if err != nil {
			return nil, err
		}
		if cmd == CmdBuy {
			return Buy{Account: temp.Account, Property: temp.Property, Shares: n}, nil
		}
		return Sell{Account: temp.Account, Property: temp.Property, Shares: n}, nil
	default:
		return nil, fmt.Errorf("unknown order command: %q", cmd)
	}
}

// EncodeOrder marshals a single order to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeOrder(w io.Writer, o Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal %s order: %w", o.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s order: %w", o.What(), err)
	}
	return nil
}

// EncodeOrders persists orders to an io.Writer in JSONL format.
func EncodeOrders(w io.Writer, orders []Order) error {
	for _, o := range orders {
		if err := EncodeOrder(w, o); err != nil {
			return err
		}
	}
	return nil
}
