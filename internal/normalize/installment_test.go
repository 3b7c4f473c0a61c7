package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstallment(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3 de 12", 3, true},
		{"5", 5, true},
		{"12 de 12", 12, true},
		{"", 1, false},
		{"   ", 1, false},
		{"de", 0, false},
	}

	for _, c := range cases {
		got, ok := Installment(c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
	}
}

func TestTextFolding(t *testing.T) {
	assert.Equal(t, "VISA", Text("  visa "))
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "VENDA CREDITO", CollapseSpaces("VENDA   CREDITO "))
}
