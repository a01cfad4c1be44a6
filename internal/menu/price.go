package menu

import "github.com/shopspring/decimal"

// PriceFormatter renders amounts with a single currency glyph and two decimals
type PriceFormatter struct {
	Symbol string
}

// Format renders an amount, e.g. "₦12.99"
func (f PriceFormatter) Format(amount decimal.Decimal) string {
	return f.Symbol + amount.StringFixed(2)
}
