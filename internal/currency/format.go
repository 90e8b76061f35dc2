package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberStyle picks the locale whose separators a currency is displayed with.
// Indonesian and German group with "." and use "," for decimals, English the reverse.
type numberStyle struct {
	locale   language.Tag
	decimals int
}

var (
	periodWhole   = numberStyle{locale: language.Indonesian, decimals: 0}
	periodDecimal = numberStyle{locale: language.German, decimals: 2}
	commaDecimal  = numberStyle{locale: language.English, decimals: 2}
)

var styles = map[Code]numberStyle{
	IDR: periodWhole,
	JPY: periodWhole,
	EUR: periodDecimal,
	USD: commaDecimal,
	SGD: commaDecimal,
	GBP: commaDecimal,
	AUD: commaDecimal,
	CNY: commaDecimal,
}

// FormatAmount renders amount with the currency symbol and its separator
// conventions. With includeHome set and a non-home currency, the home-currency
// equivalent is appended in parentheses, e.g. "$50.00 (Rp 750.000)".
func FormatAmount(amount float64, c Code, includeHome bool, rates Rates) string {
	s := c.Symbol() + formatNumber(amount, styleOf(c))

	if includeHome && c != Home && rates != nil {
		s += " (" + FormatHome(ConvertToHome(amount, c, rates)) + ")"
	}

	return s
}

// FormatHome renders a home-currency aggregate such as a monthly total.
func FormatHome(amount float64) string {
	return Home.Symbol() + " " + formatNumber(amount, periodWhole)
}

// FormatRate renders a rate table entry, "Rp 15.000" per unit.
func FormatRate(rate float64) string {
	return FormatHome(rate)
}

func styleOf(c Code) numberStyle {
	if s, ok := styles[c]; ok {
		return s
	}

	return commaDecimal
}

func formatNumber(v float64, s numberStyle) string {
	p := message.NewPrinter(s.locale)
	return p.Sprint(number.Decimal(v, number.Scale(s.decimals)))
}
