// Package format renders money amounts for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxFractionDigits matches the default of Number.prototype.toLocaleString.
const maxFractionDigits = 3

var printer = message.NewPrinter(language.AmericanEnglish)

// groupSeparator is the printer's thousands separator, e.g. "," for en-US.
var groupSeparator = strings.TrimSuffix(strings.TrimPrefix(printer.Sprintf("%d", 1000), "1"), "000")

// Balance groups the integer part of d by thousands and keeps at most three
// fractional digits with trailing zeros removed: 10000 -> "10,000",
// 10000.5 -> "10,000.5".
func Balance(d decimal.Decimal) string {
	rounded := d.Round(maxFractionDigits)

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	b.WriteString(groupInteger(whole))

	frac := rounded.Sub(whole)
	if !frac.IsZero() {
		digits := frac.StringFixed(maxFractionDigits)
		digits = strings.TrimRight(strings.TrimPrefix(digits, "0."), "0")
		b.WriteByte('.')
		b.WriteString(digits)
	}
	return b.String()
}

// groupInteger formats a non-negative whole number. The printer handles the
// uint64 range; larger values are grouped from their decimal digits.
func groupInteger(whole decimal.Decimal) string {
	n := whole.BigInt()
	if n.IsUint64() {
		return printer.Sprintf("%d", n.Uint64())
	}

	digits := n.String()
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(groupSeparator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Currency prefixes a formatted balance with a dollar sign.
func Currency(d decimal.Decimal) string {
	return "$" + Balance(d)
}
