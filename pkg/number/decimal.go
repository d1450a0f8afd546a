package number

import (
	"github.com/shopspring/decimal"
)

// SubunitDecimals decimal places between a display unit and its
// smallest indivisible subunit: 1 unit = 10^6 subunits.
const SubunitDecimals int32 = 6

// Decimal parse decimal from string, invalid input yields zero
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToSubunits scale a display amount to integer subunits, truncating
// toward zero.
func ToSubunits(amount decimal.Decimal) int64 {
	return amount.Shift(SubunitDecimals).IntPart()
}

// FromSubunits scale integer subunits back to a display amount.
func FromSubunits(subunits int64) decimal.Decimal {
	return decimal.New(subunits, -SubunitDecimals)
}
