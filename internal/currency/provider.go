package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultProviderURL serves rates with the home currency as base.
const DefaultProviderURL = "https://api.exchangerate-api.com/v4/latest/IDR"

// Source tells whether a rate table came from the provider or the fallback constants.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// FetchResult is a fully populated rate table plus its provenance. Err is set
// only when Source is SourceFallback.
type FetchResult struct {
	Rates  Rates
	Source Source
	Err    error
}

func (r FetchResult) Fallback() bool {
	return r.Source == SourceFallback
}

// Provider fetches live rates from an exchangerate-api compatible endpoint.
type Provider struct {
	url    string
	client *http.Client
}

func NewProvider(url string, timeout time.Duration) *Provider {
	if url == "" {
		url = DefaultProviderURL
	}

	return &Provider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type providerResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch never fails: on any request or decoding error it returns the fallback
// table with the cause attached.
func (p *Provider) Fetch(ctx context.Context) FetchResult {
	rates, err := p.fetch(ctx)
	if err != nil {
		slog.Warn("using fallback exchange rates", "url", p.url, "error", err)
		return FetchResult{Rates: Fallback(), Source: SourceFallback, Err: err}
	}

	return FetchResult{Rates: rates, Source: SourceLive}
}

func (p *Provider) fetch(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if body.Rates == nil {
		return nil, fmt.Errorf("decoding response: missing rates")
	}

	return invert(body.Rates), nil
}

// invert turns provider "home to X" quotes into "X to home" rates.
func invert(quotes map[string]float64) Rates {
	out := make(Rates, len(codes))

	for _, c := range codes {
		if c == Home {
			out[c] = 1
			continue
		}

		q, ok := quotes[string(c)]
		if !ok || !usable(q) {
			out[c] = fallback[c]
			continue
		}

		out[c] = 1 / q
	}

	return out
}
