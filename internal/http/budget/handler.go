package budget

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/budget"
	"github.com/Foster13/money-month-tracker/internal/currency"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/validation"
)

type Store interface {
	Get(ctx context.Context) (float64, error)
	Set(ctx context.Context, amount float64) error
}

type Handler struct {
	store    Store
	validate *validation.Validator
}

func NewHandler(store Store, validate *validation.Validator) *Handler {
	return &Handler{store: store, validate: validate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
}

type budgetResponse struct {
	MonthlyBudget float64 `json:"monthlyBudget"`
	Formatted     string  `json:"formatted"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Get(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, budgetResponse{MonthlyBudget: v, Formatted: currency.FormatHome(v)})
}

type setBudgetRequest struct {
	MonthlyBudget *float64 `json:"monthlyBudget" validate:"required,gte=0" label:"Budget"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return
	}

	if err := h.store.Set(r.Context(), *req.MonthlyBudget); err != nil {
		if errors.Is(err, budget.ErrInvalidBudget) {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		respond.Internal(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, budgetResponse{
		MonthlyBudget: *req.MonthlyBudget,
		Formatted:     currency.FormatHome(*req.MonthlyBudget),
	})
}
