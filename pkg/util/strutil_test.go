package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Válvula", "valvula"},
		{"SOLENOIDE", "solenoide"},
		{"açúcar", "acucar"},
		{"Fêmea", "femea"},
		{"ÇÃO", "cao"},
		{"cabo 3m", "cabo 3m"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Fold(tc.in), "input %q", tc.in)
	}
}

// TestFold_Idempotent verifies folding an already folded string changes
// nothing.
func TestFold_Idempotent(t *testing.T) {
	for _, in := range []string{"Válvula", "Conector BNC fêmea", "técnico"} {
		once := Fold(in)
		assert.Equal(t, once, Fold(once))
	}
}
