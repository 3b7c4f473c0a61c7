package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneySeparatorPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.234,56", "1234.56", true},
		{"1,234.56", "1234.56", true},
		{"R$ 50,00", "50", true},
		{"R$1.200", "1.2", true},
		{"100", "100", true},
		{"0,99", "0.99", true},
		{"12.345.678,90", "12345678.9", true},
		{"", "0", false},
		{"abc", "0", false},
		{"-10,00", "0", false},
	}

	for _, c := range cases {
		got, ok := Money(c.in)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "input %q: got %s", c.in, got)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
	}
}

func TestMoneyNeverNegative(t *testing.T) {
	for _, in := range []string{"-1", "-1.234,56", "R$ -3,50"} {
		got, _ := Money(in)
		assert.False(t, got.IsNegative(), "input %q", in)
	}
}
