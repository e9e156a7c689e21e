package reit

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		value Money
		want  string
	}{
		{R(0), "0.000 REIT"},
		{R(0.0004), "0.000 REIT"},
		{R(9.800004), "9.800 REIT"},
		{R(98.0005), "98.001 REIT"},
		{R(-1234.5), "-1,234.500 REIT"},
		{R(1_000_000), "1,000,000.000 REIT"},
		{R(int64(1e16)), "10,000,000,000,000,000.000 REIT"},
		{R(decimal.RequireFromString("123456789012345678901234.5678")), "123,456,789,012,345,678,901,234.568 REIT"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.value.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
