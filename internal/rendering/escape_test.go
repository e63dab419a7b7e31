package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "Built APIs in Go", want: "Built APIs in Go"},
		{name: "backslash", in: `a\b`, want: `a\textbackslash{}b`},
		{name: "braces", in: "f{x}", want: `f\{x\}`},
		{name: "dollar", in: "$100", want: `\$100`},
		{name: "ampersand", in: "R&D", want: `R\&D`},
		{name: "percent", in: "40% faster", want: `40\% faster`},
		{name: "hash", in: "C#", want: `C\#`},
		{name: "caret", in: "x^2", want: `x\textasciicircum{}2`},
		{name: "underscore", in: "snake_case", want: `snake\_case`},
		{name: "tilde", in: "~/bin", want: `\textasciitilde{}/bin`},
		{name: "unicode untouched", in: "Zürich • 東京", want: "Zürich • 東京"},
		{name: "escape output not re-escaped", in: `\{`, want: `\textbackslash{}\{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}
