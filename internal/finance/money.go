package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for every fixture amount.
const DefaultCurrency = money.USD

// Format renders amount in currency (ISO code) using its symbol, grouping and
// fraction digits, e.g. "$1,234.50". Unknown codes fall back to USD.
func Format(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
