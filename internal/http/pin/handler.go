package pin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

type Handler struct {
	svc *pnl.Service
}

func NewHandler(svc *pnl.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) LockRoutes(r chi.Router) {
	r.Get("/", h.listLocks)
	r.Post("/", h.createLock)
	r.Delete("/{id}", h.deleteLock)
}

func (h *Handler) OverrideRoutes(r chi.Router) {
	r.Get("/", h.listOverrides)
	r.Post("/", h.createOverride)
	r.Delete("/{id}", h.deleteOverride)
}

type lockRequest struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	DataType string `json:"data_type"`
	Reason   string `json:"reason"`
}

type lockResponse struct {
	ID        uuid.UUID    `json:"id"`
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	DataType  pnl.DataType `json:"data_type"`
	Reason    string       `json:"reason"`
	CreatedAt time.Time    `json:"created_at"`
}

type overrideRequest struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	DataType string `json:"data_type"`
	Field    string `json:"field"`
	Value    string `json:"value"`
	Reason   string `json:"reason"`
}

type overrideResponse struct {
	ID        uuid.UUID       `json:"id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	DataType  pnl.DataType    `json:"data_type"`
	Field     pnl.Field       `json:"field"`
	Value     decimal.Decimal `json:"value"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}

func toLockResponse(l pnl.Lock) lockResponse {
	return lockResponse{
		ID:        l.ID,
		Year:      l.Year,
		Month:     l.Month,
		DataType:  l.DataType,
		Reason:    l.Reason,
		CreatedAt: l.CreatedAt,
	}
}

func toOverrideResponse(o pnl.Override) overrideResponse {
	return overrideResponse{
		ID:        o.ID,
		Year:      o.Year,
		Month:     o.Month,
		DataType:  o.DataType,
		Field:     o.Field,
		Value:     o.Value,
		Reason:    o.Reason,
		CreatedAt: o.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listLocks(w http.ResponseWriter, r *http.Request) {
	locks, err := h.svc.Locks(r.Context())
	if err != nil {
		slog.Error("failed to list locks", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]lockResponse, len(locks))
	for i, l := range locks {
		resp[i] = toLockResponse(l)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createLock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key, err := pnl.NewKey(req.Year, req.Month, req.DataType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lock, err := h.svc.Lock(r.Context(), key, req.Reason)
	if err != nil {
		slog.Error("failed to create lock", "key", key.String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toLockResponse(*lock))
}

func (h *Handler) deleteLock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Unlock(r.Context(), id); err != nil {
		if errors.Is(err, pnl.ErrNotFound) {
			http.Error(w, "lock not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.svc.Overrides(r.Context())
	if err != nil {
		slog.Error("failed to list overrides", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]overrideResponse, len(overrides))
	for i, o := range overrides {
		resp[i] = toOverrideResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := pnl.NewOverride(req.Year, req.Month, req.DataType, req.Field, req.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o.Reason = req.Reason

	created, err := h.svc.Override(r.Context(), o)
	if err != nil {
		slog.Error("failed to create override", "key", o.Key.String(), "field", o.Field, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toOverrideResponse(*created))
}

func (h *Handler) deleteOverride(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteOverride(r.Context(), id); err != nil {
		if errors.Is(err, pnl.ErrNotFound) {
			http.Error(w, "override not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
