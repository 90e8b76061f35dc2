package transaction

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/report"
	"github.com/Foster13/money-month-tracker/internal/transaction"
	"github.com/Foster13/money-month-tracker/internal/validation"
)

// Ledger is a mutable transaction store. The main store satisfies it
// directly; the simulation is adapted to it.
type Ledger interface {
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
	Transaction(id string) (transaction.Transaction, bool)
	AddTransaction(ctx context.Context, p transaction.CreateParams) (transaction.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch transaction.Patch) error
	DeleteTransaction(ctx context.Context, id string) error
}

type RateSource interface {
	Rates() currency.Rates
}

type Handler struct {
	ledger   Ledger
	rates    RateSource
	validate *validation.Validator
	pageSize int
}

func NewHandler(ledger Ledger, rates RateSource, validate *validation.Validator, pageSize int) *Handler {
	return &Handler{ledger: ledger, rates: rates, validate: validate, pageSize: pageSize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	Amount      float64          `json:"amount" validate:"gt=0" label:"Amount"`
	Currency    currency.Code    `json:"currency" validate:"omitempty,currency" label:"Currency"`
	CategoryID  string           `json:"categoryId" validate:"required" label:"Category"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	Description string           `json:"description" validate:"required" label:"Description"`
	Type        transaction.Type `json:"type" validate:"required,oneof=income expense" label:"Type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return
	}

	date, err := transaction.ParseDate(req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.ledger.AddTransaction(r.Context(), transaction.CreateParams{
		Amount:      req.Amount,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		Date:        date,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx, h.ledger.Categories(), h.rates.Rates()))
}

// listQuery holds the parsed query string of GET /transactions.
type listQuery struct {
	period report.Period
	typ    transaction.Type
	sort   report.SortKey
	page   int
}

func parseListQuery(r *http.Request) (listQuery, error) {
	q := r.URL.Query()

	var (
		lq  listQuery
		err error
	)

	if s := q.Get("type"); s != "" {
		lq.typ = transaction.Type(s)
		if !lq.typ.Valid() {
			return lq, fmt.Errorf("invalid type %q", s)
		}
	}

	if lq.sort, err = report.ParseSortKey(q.Get("sort")); err != nil {
		return lq, err
	}

	if s := q.Get("start_date"); s != "" {
		if lq.period.Start, err = transaction.ParseDate(s); err != nil {
			return lq, fmt.Errorf("invalid start_date: %w", err)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if lq.period.End, err = transaction.ParseDate(s); err != nil {
			return lq, fmt.Errorf("invalid end_date: %w", err)
		}
	}

	lq.page = 1
	if s := q.Get("page"); s != "" {
		if lq.page, err = strconv.Atoi(s); err != nil {
			return lq, fmt.Errorf("invalid page %q", s)
		}
	}

	return lq, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	lq, err := parseListQuery(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cats := h.ledger.Categories()
	rates := h.rates.Rates()

	txs := report.FilterPeriod(h.ledger.Transactions(), lq.period)
	if lq.typ != "" {
		txs = report.FilterType(txs, lq.typ)
	}

	sorted := report.Sort(txs, cats, rates, lq.sort)

	respond.JSON(w, http.StatusOK, listResponse{
		Page:   report.Paginate(toResponseList(sorted, cats, rates), lq.page, h.pageSize),
		Totals: report.ComputeTotals(txs, rates),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.ledger.Transaction(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "transaction not found")
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx, h.ledger.Categories(), h.rates.Rates()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Internal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Amount      *float64          `json:"amount,omitempty" validate:"omitnil,gt=0" label:"Amount"`
	Currency    *currency.Code    `json:"currency,omitempty" validate:"omitnil,currency" label:"Currency"`
	CategoryID  *string           `json:"categoryId,omitempty" validate:"omitnil,min=1" label:"Category"`
	Date        *string           `json:"date,omitempty" validate:"omitnil,datetime=2006-01-02" label:"Date"`
	Description *string           `json:"description,omitempty" validate:"omitnil,min=1" label:"Description"`
	Type        *transaction.Type `json:"type,omitempty" validate:"omitnil,oneof=income expense" label:"Type"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return
	}

	if _, ok := h.ledger.Transaction(id); !ok {
		respond.Error(w, http.StatusNotFound, "transaction not found")
		return
	}

	patch := transaction.Patch{
		Amount:      req.Amount,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Type:        req.Type,
	}

	if req.Date != nil {
		d, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		patch.Date = &d
	}

	if err := h.ledger.UpdateTransaction(r.Context(), id, patch); err != nil {
		respond.Internal(w, r, err)
		return
	}

	tx, _ := h.ledger.Transaction(id)

	respond.JSON(w, http.StatusOK, toResponse(tx, h.ledger.Categories(), h.rates.Rates()))
}
