package record

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

type Handler struct {
	svc *pnl.Service
}

func NewHandler(svc *pnl.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/fields", h.fields)
}

type recordResponse struct {
	Year     int                           `json:"year"`
	Month    int                           `json:"month"`
	DataType pnl.DataType                  `json:"data_type"`
	Values   map[pnl.Field]decimal.Decimal `json:"values"`
	SyncedAt time.Time                     `json:"synced_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := pnl.ListFilter{}

	if s := r.URL.Query().Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		filter.Year = new(year)
	}

	if s := r.URL.Query().Get("data_type"); s != "" {
		dt, err := pnl.ParseDataType(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter.DataType = new(dt)
	}

	recs, err := h.svc.Records(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list records", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]recordResponse, len(recs))
	for i, rec := range recs {
		resp[i] = recordResponse{
			Year:     rec.Year,
			Month:    rec.Month,
			DataType: rec.DataType,
			Values:   rec.Values,
			SyncedAt: rec.SyncedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type fieldResponse struct {
	Name    pnl.Field   `json:"name"`
	Section pnl.Section `json:"section,omitempty"`
	Kind    string      `json:"kind"`
}

var kindNames = map[pnl.FieldKind]string{
	pnl.KindLineItem: "line_item",
	pnl.KindTotal:    "total",
	pnl.KindRatio:    "ratio",
}

// fields lists the record columns in stored order, for dashboards that
// render records generically.
func (h *Handler) fields(w http.ResponseWriter, _ *http.Request) {
	defs := pnl.Fields()

	resp := make([]fieldResponse, len(defs))
	for i, d := range defs {
		resp[i] = fieldResponse{Name: d.Field, Section: d.Section, Kind: kindNames[d.Kind]}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
