package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount string
		symbol string
		want   string
	}{
		{"1.2", "€", "€1.20"},
		{"0", "$", "$0.00"},
		{"16.666", "£", "£16.67"},
		{"1500", "¥", "¥1500.00"},
		{"-0.2", "€", "€-0.20"},
		{"3.14159", "", "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.amount), tt.symbol))
		})
	}
}
