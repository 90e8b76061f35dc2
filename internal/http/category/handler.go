package category

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/transaction"
	"github.com/Foster13/money-month-tracker/internal/validation"
)

type Store interface {
	Categories() []transaction.Category
	Category(id string) (transaction.Category, bool)
	AddCategory(ctx context.Context, p transaction.CategoryParams) (transaction.Category, error)
	UpdateCategory(ctx context.Context, id string, patch transaction.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) (int, error)
}

type Handler struct {
	store    Store
	validate *validation.Validator
}

func NewHandler(store Store, validate *validation.Validator) *Handler {
	return &Handler{store: store, validate: validate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cats := h.store.Categories()

	if s := r.URL.Query().Get("type"); s != "" {
		typ := transaction.Type(s)
		filtered := make([]transaction.Category, 0, len(cats))

		for _, c := range cats {
			if c.Type == typ {
				filtered = append(filtered, c)
			}
		}

		cats = filtered
	}

	respond.JSON(w, http.StatusOK, cats)
}

type createCategoryRequest struct {
	Name  string           `json:"name" validate:"required" label:"Name"`
	Type  transaction.Type `json:"type" validate:"required,oneof=income expense" label:"Type"`
	Color string           `json:"color" validate:"omitempty,hexcolor" label:"Color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return
	}

	c, err := h.store.AddCategory(r.Context(), transaction.CategoryParams{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
	})
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, c)
}

type updateCategoryRequest struct {
	Name  *string           `json:"name,omitempty" validate:"omitnil,min=1" label:"Name"`
	Type  *transaction.Type `json:"type,omitempty" validate:"omitnil,oneof=income expense" label:"Type"`
	Color *string           `json:"color,omitempty" validate:"omitnil,hexcolor" label:"Color"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateCategoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return
	}

	if _, ok := h.store.Category(id); !ok {
		respond.Error(w, http.StatusNotFound, "category not found")
		return
	}

	err := h.store.UpdateCategory(r.Context(), id, transaction.CategoryPatch{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
	})
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	c, _ := h.store.Category(id)

	respond.JSON(w, http.StatusOK, c)
}

type deleteCategoryResponse struct {
	RemovedTransactions int `json:"removedTransactions"`
}

// delete removes the category and, with it, every transaction that uses it.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteCategoryResponse{RemovedTransactions: removed})
}
