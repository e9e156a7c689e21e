package reit

import (
	"encoding/json"
	"fmt"
)

// Order is a request to change the market state. Executing an order appends
// exactly one block to the chain when it succeeds.
type Order interface {
	What() CommandType // What returns the command type of the order (e.g., "buy", "sell").
}

// Open registers a new account.
type Open struct {
	Account string
	Balance Money // Balance is the initial cash of the account.
}

// List lists a new property.
type List struct {
	Property string
	Value    Money // Value is the total value of the property.
}

// Buy buys shares of a property for an account.
type Buy struct {
	Account  string
	Property string
	Shares   int64
}

// Sell sells shares of a property held by an account.
type Sell struct {
	Account  string
	Property string
	Shares   int64
}

func (Open) What() CommandType { return CmdOpen }
func (List) What() CommandType { return CmdList }
func (Buy) What() CommandType  { return CmdBuy }
func (Sell) What() CommandType { return CmdSell }

// MarshalJSON implements the json.Marshaler interface for Open.
func (o Open) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", o.What())
	w.Append("account", o.Account)
	w.EmbedFrom(o.Balance)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for List.
func (o List) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", o.What())
	w.Append("property", o.Property)
	w.EmbedFrom(o.Value)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (o Buy) MarshalJSON() ([]byte, error) {
	return marshalTrade(o.What(), o.Account, o.Property, o.Shares)
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (o Sell) MarshalJSON() ([]byte, error) {
	return marshalTrade(o.What(), o.Account, o.Property, o.Shares)
}

func marshalTrade(cmd CommandType, account, property string, shares int64) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", cmd)
	w.Append("account", account)
	w.Append("property", property)
	w.Append("shares", shares)
	return w.MarshalJSON()
}

// tradeCmd is a specialized struct for decoding buy and sell orders.
type tradeCmd struct {
	Account  string      `json:"account"`
	Property string      `json:"property"`
	Shares   json.Number `json:"shares"`
}

func (t tradeCmd) shares() (int64, error) {
	n, err := t.Shares.Int64()
	if err != nil {
		return 0, fmt.Errorf("shares %q is not an integer: %w", t.Shares, err)
	}
	return n, nil
}
