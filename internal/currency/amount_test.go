package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "1234.56", want: 1234.56},
		{input: "1,234.56", want: 1234.56},
		{input: "1.234,56", want: 1234.56},
		{input: "1234,56", want: 1234.56},
		{input: "1,234", want: 1234},
		{input: "1.000.000", want: 1000000},
		{input: " 50 ", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := currency.ParseAmount(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-5", "0,00"} {
		t.Run(input, func(t *testing.T) {
			_, err := currency.ParseAmount(input)
			assert.ErrorIs(t, err, currency.ErrInvalidAmount)
		})
	}
}
