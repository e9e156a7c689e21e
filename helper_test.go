package reit

import (
	"testing"
	"time"
)

// fakeClock returns a clock starting at a fixed date, advancing one second per call.
func fakeClock() func() time.Time {
	t := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newTestMarket creates a market with one property of value 1,000,000 named
// "Main St" and an account "alice" with the given balance.
func newTestMarket(t *testing.T, balance float64) *Market {
	t.Helper()
	m := NewMarket(NewChain(WithClock(fakeClock())))
	if _, err := m.List("Main St", R(1_000_000)); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := m.Open("alice", R(balance)); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return m
}

// mustProperty returns a listed property or fails the test.
func mustProperty(t *testing.T, name string, value Money) *Property {
	t.Helper()
	p, err := NewProperty(name, value)
	if err != nil {
		t.Fatalf("NewProperty(%q, %v) error = %v", name, value, err)
	}
	return p
}
