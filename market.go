package reit

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

// Market is the registry of accounts and properties, and the chain recording
// everything that happens to them.
//
// A Market is not safe for concurrent use.
type Market struct {
	chain      *Chain
	currency   string
	accounts   map[string]*Account  // index accounts by name
	properties map[string]*Property // index properties by name
}

// NewMarket creates an empty market recording events in c.
func NewMarket(c *Chain) *Market {
	return NewMarketIn(c, Currency)
}

// NewMarketIn creates an empty market whose amounts are all in currency.
func NewMarketIn(c *Chain, currency string) *Market {
	return &Market{
		chain:      c,
		currency:   currency,
		accounts:   make(map[string]*Account),
		properties: make(map[string]*Property),
	}
}

// Chain returns the chain of the market.
func (m *Market) Chain() *Chain { return m.chain }

// Currency returns the currency every amount of the market is expressed in.
func (m *Market) Currency() string { return m.currency }

// Open registers a new account with an initial balance.
func (m *Market) Open(name string, balance Money) (*Account, error) {
	if name == "" {
		return nil, fmt.Errorf("account: %w", ErrMissingName)
	}
	if _, exists := m.accounts[name]; exists {
		return nil, fmt.Errorf("account %q: %w", name, ErrDuplicate)
	}
	balance, err := m.money(balance)
	if err != nil {
		return nil, err
	}
	a, err := NewAccount(name, balance)
	if err != nil {
		return nil, err
	}
	m.accounts[name] = a
	m.append(fmt.Sprintf("New account created: %s with %s", name, balance))
	return a, nil
}

// List lists a new property of the given total value.
func (m *Market) List(name string, value Money) (*Property, error) {
	if name == "" {
		return nil, fmt.Errorf("property: %w", ErrMissingName)
	}
	if _, exists := m.properties[name]; exists {
		return nil, fmt.Errorf("property %q: %w", name, ErrDuplicate)
	}
	value, err := m.money(value)
	if err != nil {
		return nil, err
	}
	p, err := NewProperty(name, value)
	if err != nil {
		return nil, err
	}
	m.properties[name] = p
	m.append(fmt.Sprintf("New property listed: %s with total price %s", name, value))
	return p, nil
}

// Account returns the account registered with this name.
func (m *Market) Account(name string) (*Account, error) {
	a, ok := m.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return a, nil
}

// Property returns the property listed with this name.
func (m *Market) Property(name string) (*Property, error) {
	p, ok := m.properties[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, name)
	}
	return p, nil
}

// Buy looks up the account and the property and executes the buy.
func (m *Market) Buy(account, property string, shares int64) (Receipt, error) {
	a, p, err := m.lookup(account, property)
	if err != nil {
		return Receipt{}, err
	}
	r, err := a.Buy(p, shares, m.chain)
	if err != nil {
		return Receipt{}, err
	}
	log.Printf("block #%d: %s", r.Block.Index(), r.Block.Payload())
	return r, nil
}

// Sell looks up the account and the property and executes the sell.
func (m *Market) Sell(account, property string, shares int64) (Receipt, error) {
	a, p, err := m.lookup(account, property)
	if err != nil {
		return Receipt{}, err
	}
	r, err := a.Sell(p, shares, m.chain)
	if err != nil {
		return Receipt{}, err
	}
	log.Printf("block #%d: %s", r.Block.Index(), r.Block.Payload())
	return r, nil
}

// Accounts returns an iterator over accounts, sorted by name.
func (m *Market) Accounts() iter.Seq[*Account] {
	return sortedValues(m.accounts)
}

// Properties returns an iterator over properties, sorted by name.
func (m *Market) Properties() iter.Seq[*Property] {
	return sortedValues(m.properties)
}

// Execute applies a single order and returns the block it appended.
func (m *Market) Execute(o Order) (Block, error) {
	var err error
	switch v := o.(type) {
	case Open:
		_, err = m.Open(v.Account, v.Balance)
	case List:
		_, err = m.List(v.Property, v.Value)
	case Buy:
		_, err = m.Buy(v.Account, v.Property, v.Shares)
	case Sell:
		_, err = m.Sell(v.Account, v.Property, v.Shares)
	default:
		return Block{}, fmt.Errorf("unsupported order type: %T %v", o, o)
	}
	if err != nil {
		return Block{}, fmt.Errorf("invalid %s order: %w", o.What(), err)
	}
	return m.chain.Last(), nil
}

// Replay executes orders in sequence and stops at the first failure.
func (m *Market) Replay(orders []Order) error {
	for i, o := range orders {
		if _, err := m.Execute(o); err != nil {
			return fmt.Errorf("order #%d: %w", i+1, err)
		}
	}
	return nil
}

func (m *Market) lookup(account, property string) (*Account, *Property, error) {
	a, err := m.Account(account)
	if err != nil {
		return nil, nil, err
	}
	p, err := m.Property(property)
	if err != nil {
		return nil, nil, err
	}
	return a, p, nil
}

// money sets the market currency on amounts that have none, and rejects
// amounts in any other currency.
func (m *Market) money(v Money) (Money, error) {
	if v.cur == "" {
		v.cur = m.currency
	}
	if v.cur != m.currency {
		return Money{}, fmt.Errorf("%w: %s is not in %s", ErrInvalidAmount, v, m.currency)
	}
	return v, nil
}

func (m *Market) append(payload string) {
	b := m.chain.Append(payload)
	log.Printf("block #%d: %s", b.Index(), b.Payload())
}

func sortedValues[V any](index map[string]V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, k := range slices.Sorted(maps.Keys(index)) {
			if !yield(index[k]) {
				return
			}
		}
	}
}
