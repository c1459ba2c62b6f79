package pricing

import "github.com/shopspring/decimal"

// FormatPrice renders amount with the currency symbol in front and exactly two
// decimals, whatever the currency
func FormatPrice(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}
