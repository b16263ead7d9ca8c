package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "indian thousands grouping", input: "1,23,456.00", want: 123456},
		{name: "western grouping", input: "1,234.56", want: 1234.56},
		{name: "plain number", input: "500", want: 500},
		{name: "embedded spaces", input: " 1 234.50 ", want: 1234.50},
		{name: "empty", input: "", want: 0},
		{name: "whitespace only", input: "   ", want: 0},
		{name: "unparseable", input: "abc", want: 0},
		{name: "negative degrades to zero", input: "-42", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.input))
		})
	}
}
