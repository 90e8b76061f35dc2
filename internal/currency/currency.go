package currency

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Code is an ISO 4217 code of a tracked currency.
type Code string

const (
	IDR Code = "IDR"
	USD Code = "USD"
	SGD Code = "SGD"
	GBP Code = "GBP"
	EUR Code = "EUR"
	JPY Code = "JPY"
	AUD Code = "AUD"
	CNY Code = "CNY"
)

// Home is the settlement currency every aggregate is computed in.
const Home = IDR

var ErrUnknownCurrency = errors.New("unknown currency")

type info struct {
	name   string
	symbol string
}

var codes = []Code{IDR, USD, SGD, GBP, EUR, JPY, AUD, CNY}

var infos = map[Code]info{
	IDR: {name: "Indonesian Rupiah", symbol: "Rp"},
	USD: {name: "US Dollar", symbol: "$"},
	SGD: {name: "Singapore Dollar", symbol: "S$"},
	GBP: {name: "British Pound", symbol: "£"},
	EUR: {name: "Euro", symbol: "€"},
	JPY: {name: "Japanese Yen", symbol: "¥"},
	AUD: {name: "Australian Dollar", symbol: "A$"},
	CNY: {name: "Chinese Yuan", symbol: "¥"},
}

// All returns every tracked currency, home currency first.
func All() []Code {
	return slices.Clone(codes)
}

// Parse resolves a case-insensitive currency code.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}

	return c, nil
}

func (c Code) Valid() bool {
	_, ok := infos[c]
	return ok
}

func (c Code) Symbol() string {
	return infos[c].symbol
}

func (c Code) Name() string {
	return infos[c].name
}

func (c Code) String() string {
	return string(c)
}
