// Package pricing computes the running price of a shopper's selection.
package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Total starts from base. Every selected variant replaces the running total
// with its own price, since a variant price is the full price of that
// configuration. Groups are visited in key order so the result is
// deterministic when several are selected; the last one wins. Add-on prices
// are then added on top.
func Total(base decimal.Decimal, variants map[string]decimal.Decimal, addOns []decimal.Decimal) decimal.Decimal {
	total := base

	groups := make([]string, 0, len(variants))
	for g := range variants {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	for _, g := range groups {
		total = variants[g]
	}

	for _, p := range addOns {
		total = total.Add(p)
	}
	return total
}

// Display renders an amount rounded to two fractional digits.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
