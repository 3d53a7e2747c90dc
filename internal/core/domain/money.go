package domain

import "github.com/shopspring/decimal"

// Bounds on amounts and opening balances accepted from callers.
const (
	MaxMoneyScale     = 18 // fractional digits
	MaxMoneyMagnitude = 18 // |value| < 10^MaxMoneyMagnitude
)

var moneyLimit = decimal.New(1, MaxMoneyMagnitude)

// ValidMoney reports whether d is within the accepted scale and magnitude.
// The exponent is checked before any arithmetic, since comparing a value
// such as 1e-2000000 would rescale it to millions of digits.
func ValidMoney(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxMoneyScale {
		return false
	}
	if exp > MaxMoneyMagnitude {
		return d.IsZero()
	}
	return d.Abs().LessThan(moneyLimit)
}
