package currency

import (
	"maps"
	"math"
)

// Rates maps a currency to the number of home-currency units one unit of it buys.
type Rates map[Code]float64

var fallback = Rates{
	IDR: 1,
	USD: 15000,
	SGD: 11000,
	GBP: 19000,
	EUR: 16000,
	JPY: 100,
	AUD: 10000,
	CNY: 2100,
}

// Fallback returns the hardcoded table used when the live provider is unavailable.
func Fallback() Rates {
	return maps.Clone(fallback)
}

func (r Rates) Clone() Rates {
	if r == nil {
		return nil
	}

	return maps.Clone(r)
}

// Normalize returns a copy holding every tracked currency. Missing or unusable
// rates are taken from the fallback table and the home rate is pinned to 1.
func (r Rates) Normalize() Rates {
	out := make(Rates, len(codes))

	for _, c := range codes {
		v, ok := r[c]
		if !ok || !usable(v) {
			v = fallback[c]
		}

		out[c] = v
	}

	out[Home] = 1

	return out
}

// ConvertToHome converts amount in currency c to the home currency.
// A currency missing from rates yields NaN.
func ConvertToHome(amount float64, c Code, rates Rates) float64 {
	if c == Home {
		return amount
	}

	rate, ok := rates[c]
	if !ok {
		return math.NaN()
	}

	return amount * rate
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
