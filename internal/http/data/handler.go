package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Foster13/money-month-tracker/internal/encoding"
	"github.com/Foster13/money-month-tracker/internal/http/respond"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

const maxImportSize = 10 << 20

type Store interface {
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Transactions() []transaction.Transaction
	Categories() []transaction.Category
}

// CSVWriter renders the transaction listing as CSV.
type CSVWriter interface {
	CSV(w io.Writer) error
}

type Handler struct {
	store Store
	csv   CSVWriter
	now   func() time.Time
}

func NewHandler(store Store, csv CSVWriter) *Handler {
	return &Handler{store: store, csv: csv, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.exportJSON)
	r.Get("/export.csv", h.exportCSV)
	r.Post("/import", h.importJSON)
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Export()
	if err != nil {
		respond.Internal(w, r, err)
		return
	}

	attachment(w, "application/json", transaction.ExportFilename(h.now()))

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(transaction.ExportFilename(h.now()), ".json") + ".csv"
	attachment(w, "text/csv", name)

	if err := h.csv.CSV(w); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}

type importResponse struct {
	Transactions int `json:"transactions"`
	Categories   int `json:"categories"`
}

// importJSON replaces all data with an uploaded backup. The body is either the
// raw JSON document or a multipart form with a "file" field.
func (h *Handler) importJSON(w http.ResponseWriter, r *http.Request) {
	body, err := readUpload(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Import(r.Context(), body); err != nil {
		if errors.Is(err, transaction.ErrInvalidImport) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Internal(w, r, err)

		return
	}

	slog.InfoContext(r.Context(), "data imported",
		"transactions", len(h.store.Transactions()), "categories", len(h.store.Categories()))

	respond.JSON(w, http.StatusOK, importResponse{
		Transactions: len(h.store.Transactions()),
		Categories:   len(h.store.Categories()),
	})
}

func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var src io.Reader = r.Body

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file: %w", err)
		}
		defer file.Close()

		src = file
	}

	data, err := encoding.ReadAll(src, maxImportSize)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return data, nil
}
