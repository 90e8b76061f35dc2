package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Foster13/money-month-tracker/internal/http/budget"
	"github.com/Foster13/money-month-tracker/internal/http/category"
	"github.com/Foster13/money-month-tracker/internal/http/dashboard"
	"github.com/Foster13/money-month-tracker/internal/http/data"
	"github.com/Foster13/money-month-tracker/internal/http/rates"
	"github.com/Foster13/money-month-tracker/internal/http/simulation"
	"github.com/Foster13/money-month-tracker/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Categories   *category.Handler
	Rates        *rates.Handler
	Data         *data.Handler
	Budget       *budget.Handler
	Dashboard    *dashboard.Handler
	Simulation   *simulation.Handler
}

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/rates", h.Rates.Routes)
		r.Route("/data", h.Data.Routes)
		r.Route("/budget", h.Budget.Routes)
		r.Route("/dashboard", h.Dashboard.Routes)

		r.Route("/simulation", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Simulation.Routes(r)
		})
	})

	return router
}
