package types

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fraction digits money values are rounded to.
const MoneyPlaces = 2

// RoundMoney rounds a value to two fraction digits.
//
// The midpoint is rounded away from zero, so 1.005 becomes 1.01 and
// -1.005 becomes -1.01.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Money returns the rounded value of a nullable decimal. NULL is 0.00.
func Money(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return RoundMoney(decimal.Zero)
	}

	return RoundMoney(d.Decimal)
}

// ParseAmount parses free-form user input into a money value.
//
// Thousands separators and whitespace are ignored. Input that still does
// not parse is treated as zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return RoundMoney(decimal.Zero)
	}

	return RoundMoney(d)
}
