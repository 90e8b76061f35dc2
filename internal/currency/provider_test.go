package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

func TestProvider_Fetch_Live(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"IDR","rates":{"IDR":1,"USD":0.0000625,"EUR":0.00005,"JPY":0.01}}`))
	}))
	defer ts.Close()

	p := currency.NewProvider(ts.URL, time.Second)
	res := p.Fetch(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, currency.SourceLive, res.Source)
	assert.False(t, res.Fallback())
	require.Len(t, res.Rates, 8)
	assert.Equal(t, 1.0, res.Rates[currency.IDR])
	assert.InDelta(t, 16000, res.Rates[currency.USD], 1e-6)
	assert.InDelta(t, 20000, res.Rates[currency.EUR], 1e-6)
	assert.InDelta(t, 100, res.Rates[currency.JPY], 1e-6)
	// Absent quotes fall back per currency.
	assert.Equal(t, 11000.0, res.Rates[currency.SGD])
	assert.Equal(t, 2100.0, res.Rates[currency.CNY])
}

func TestProvider_Fetch_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "MalformedBody",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "MissingRates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"base":"IDR"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			res := currency.NewProvider(ts.URL, time.Second).Fetch(context.Background())

			assert.True(t, res.Fallback())
			assert.Error(t, res.Err)
			assert.Equal(t, currency.Fallback(), res.Rates)
		})
	}
}

func TestProvider_Fetch_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	res := currency.NewProvider(url, time.Second).Fetch(context.Background())

	assert.True(t, res.Fallback())
	assert.Error(t, res.Err)
	assert.Equal(t, currency.Fallback(), res.Rates)
}
