package simulation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/http/dashboard"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	txHandler "github.com/Foster13/money-month-tracker/internal/http/transaction"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/simulation"
	"github.com/Foster13/money-month-tracker/internal/transaction"
	"github.com/Foster13/money-month-tracker/internal/validation"
)

// Main is the part of the main store a fork is taken from.
type Main interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
	txHandler.RateSource
}

type Handler struct {
	sim          *simulation.Service
	main         Main
	transactions *txHandler.Handler
	dashboard    *dashboard.Handler
}

func NewHandler(sim *simulation.Service, main Main, validate *validation.Validator, pageSize int, series report.SeriesOptions) *Handler {
	ledger := simulation.NewLedger(sim)

	return &Handler{
		sim:          sim,
		main:         main,
		transactions: txHandler.NewHandler(ledger, main, validate, pageSize),
		dashboard:    dashboard.NewHandler(ledger, main, nil, series),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/start", h.start)
	r.Delete("/", h.clear)
	r.Route("/transactions", h.transactions.Routes)
	r.Route("/dashboard", h.dashboard.Routes)
}

type statusResponse struct {
	Active       bool `json:"active"`
	Transactions int  `json:"transactions"`
	Categories   int  `json:"categories"`
}

func (h *Handler) snapshot() statusResponse {
	return statusResponse{
		Active:       h.sim.Active(),
		Transactions: len(h.sim.Transactions()),
		Categories:   len(h.sim.Categories()),
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.snapshot())
}

// start forks the main ledger, discarding any previous simulation.
func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	h.sim.LoadFromMain(h.main.Transactions(), h.main.Categories())
	respond.JSON(w, http.StatusOK, h.snapshot())
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.sim.Clear()
	w.WriteHeader(http.StatusNoContent)
}
