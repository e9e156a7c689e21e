package reit

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
)

// Account is a market participant: a cash balance and share holdings.
//
// An Account is only mutated by trades. A trade validates everything before
// it mutates anything.
type Account struct {
	name     string
	balance  Money
	holdings map[string]int64 // shares indexed by property name; never zero
}

// Snapshot is a copy of an account state.
type Snapshot struct {
	Balance  Money
	Holdings map[string]int64
}

// NewAccount creates an account with no holdings.
func NewAccount(name string, balance Money) (*Account, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s is negative", ErrInvalidAmount, balance)
	}
	return &Account{
		name:     name,
		balance:  balance,
		holdings: make(map[string]int64),
	}, nil
}

func (a *Account) Name() string   { return a.name }
func (a *Account) Balance() Money { return a.balance }

// Holding returns the number of shares held in property.
func (a *Account) Holding(property string) int64 { return a.holdings[property] }

// Snapshot returns a copy of the balance and holdings.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{Balance: a.balance, Holdings: maps.Clone(a.holdings)}
}

// Buy buys shares of p and records the trade in c.
func (a *Account) Buy(p *Property, shares int64, c *Chain) (Receipt, error) {
	if shares <= 0 {
		return Receipt{}, fmt.Errorf("%s cannot buy %d shares of %s: %w", a.name, shares, p.name, ErrInvalidShareCount)
	}
	if err := a.checkCurrency(p); err != nil {
		return Receipt{}, err
	}
	if p.remaining < shares {
		return Receipt{}, fmt.Errorf("%s cannot buy %d shares of %s, %d remaining: %w", a.name, shares, p.name, p.remaining, ErrInsufficientShares)
	}
	cost, err := p.CostOfBuying(p.remaining, shares)
	if err != nil {
		return Receipt{}, err
	}
	if a.balance.LessThan(cost) {
		return Receipt{}, fmt.Errorf("%s cannot pay %s for %d shares of %s with %s: %w", a.name, cost, shares, p.name, a.balance, ErrInsufficientFunds)
	}

	a.balance = a.balance.Sub(cost)
	a.holdings[p.name] += shares
	p.remaining -= shares

	return a.record(CmdBuy, p, shares, cost, c), nil
}

// Sell sells shares of p back to the market and records the trade in c.
func (a *Account) Sell(p *Property, shares int64, c *Chain) (Receipt, error) {
	if shares <= 0 {
		return Receipt{}, fmt.Errorf("%s cannot sell %d shares of %s: %w", a.name, shares, p.name, ErrInvalidShareCount)
	}
	if err := a.checkCurrency(p); err != nil {
		return Receipt{}, err
	}
	if held := a.holdings[p.name]; held < shares {
		return Receipt{}, fmt.Errorf("%s cannot sell %d shares of %s, %d held: %w", a.name, shares, p.name, held, ErrInsufficientShares)
	}
	if p.remaining+shares > Supply {
		return Receipt{}, fmt.Errorf("%s cannot sell %d shares of %s, %d remaining: %w", a.name, shares, p.name, p.remaining, ErrSupplyExceeded)
	}
	proceeds, err := p.ProceedsOfSelling(p.remaining, shares)
	if err != nil {
		return Receipt{}, err
	}

	a.balance = a.balance.Add(proceeds)
	a.holdings[p.name] -= shares
	if a.holdings[p.name] == 0 {
		delete(a.holdings, p.name)
	}
	p.remaining += shares

	return a.record(CmdSell, p, shares, proceeds, c), nil
}

// checkCurrency rejects trades between an account and a property valued in
// different currencies.
func (a *Account) checkCurrency(p *Property) error {
	ac, pc := a.balance.Currency(), p.value.Currency()
	if ac != "" && pc != "" && ac != pc {
		return fmt.Errorf("%w: %s holds %s but %s is valued in %s", ErrInvalidAmount, a.name, ac, p.name, pc)
	}
	return nil
}

// record appends the trade to the chain and returns its receipt.
func (a *Account) record(cmd CommandType, p *Property, shares int64, amount Money, c *Chain) Receipt {
	r := Receipt{
		ID:        uuid.New(),
		Command:   cmd,
		Account:   a.name,
		Property:  p.name,
		Shares:    shares,
		Amount:    amount,
		Price:     p.Price(),
		Remaining: p.remaining,
	}
	r.Block = c.Append(r.payload())
	return r
}
