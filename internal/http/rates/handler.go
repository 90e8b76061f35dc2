package rates

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

type Store interface {
	Rates() currency.Rates
	LastRateUpdate() *time.Time
	UpdateExchangeRates(ctx context.Context, rates currency.Rates) error
	RefreshRates(ctx context.Context, f transaction.RateFetcher) (currency.FetchResult, error)
}

type Handler struct {
	store   Store
	fetcher transaction.RateFetcher
}

func NewHandler(store Store, fetcher transaction.RateFetcher) *Handler {
	return &Handler{store: store, fetcher: fetcher}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.replace)
	r.Post("/refresh", h.refresh)
}

type rateResponse struct {
	Currency  currency.Code `json:"currency"`
	Name      string        `json:"name"`
	Symbol    string        `json:"symbol"`
	Rate      float64       `json:"rate"`
	Formatted string        `json:"formatted"`
}

type ratesResponse struct {
	Rates          []rateResponse `json:"rates"`
	LastRateUpdate *time.Time     `json:"lastRateUpdate"`
	Source         string         `json:"source,omitempty"`
	Warning        string         `json:"warning,omitempty"`
}

func (h *Handler) snapshot() ratesResponse {
	table := h.store.Rates()
	resp := ratesResponse{LastRateUpdate: h.store.LastRateUpdate()}

	for _, c := range currency.All() {
		resp.Rates = append(resp.Rates, rateResponse{
			Currency:  c,
			Name:      c.Name(),
			Symbol:    c.Symbol(),
			Rate:      table[c],
			Formatted: currency.FormatRate(table[c]),
		})
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.snapshot())
}

// replace swaps the whole table. Missing or non-positive entries are
// filled from the fallback table and IDR stays pinned at 1.
func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var req map[string]float64
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	table := make(currency.Rates, len(req))

	for code, rate := range req {
		c, err := currency.Parse(code)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		table[c] = rate
	}

	if err := h.store.UpdateExchangeRates(r.Context(), table); err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.snapshot())
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.RefreshRates(r.Context(), h.fetcher)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	resp := h.snapshot()
	resp.Source = string(res.Source)

	if res.Fallback() {
		resp.Warning = "live rates unavailable, using fallback rates"
	}

	respond.JSON(w, http.StatusOK, resp)
}
