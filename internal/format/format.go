// Package format renders prices, numbers and dates for display.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyPrefix precedes every rendered price.
const CurrencyPrefix = "BDT "

const dateLayout = "1/2/2006"

var printer = message.NewPrinter(language.English)

// Number renders n with thousands separators, e.g. 129,999.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Price renders an amount in taka, e.g. "BDT 6,900".
func Price(amount int64) string {
	return CurrencyPrefix + Number(amount)
}

// Percent renders a whole percentage, e.g. "15%".
func Percent(p int64) string {
	return printer.Sprintf("%d%%", p)
}

// Date renders t as month/day/year.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}
