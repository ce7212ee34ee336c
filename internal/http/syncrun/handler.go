package syncrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	"github.com/MrJamesThe3rd/plsync/internal/source"
)

// Sources builds the remote sources a JSON sync request can name. A nil
// func means the source is not configured.
type Sources struct {
	Sheets func(ctx context.Context) (source.Source, error)
	CSVURL func(link string) source.Source
	// DefaultCSVURL is used when a csv_url request carries no url.
	DefaultCSVURL string
	// AllowedHosts lists the hosts a csv_url request may name besides
	// DefaultCSVURL. Other urls are rejected before anything is fetched.
	AllowedHosts []string
}

// allowed reports whether a caller-supplied csv link may be fetched.
func (s Sources) allowed(raw string) bool {
	if raw == s.DefaultCSVURL {
		return true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return false
	}

	return slices.ContainsFunc(s.AllowedHosts, func(h string) bool {
		return strings.EqualFold(h, u.Hostname())
	})
}

type Handler struct {
	svc           *pnl.Service
	sources       Sources
	defaults      pnl.ClassifyOptions
	maxUploadSize int64
}

func NewHandler(svc *pnl.Service, sources Sources, defaults pnl.ClassifyOptions, maxUploadSize int64) *Handler {
	return &Handler{
		svc:           svc,
		sources:       sources,
		defaults:      defaults,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.sync)
}

type syncRequest struct {
	Source    string `json:"source"`
	URL       string `json:"url"`
	Year      int    `json:"year"`
	HeaderRow *int   `json:"header_row"`
	DryRun    bool   `json:"dry_run"`
}

type recordResponse struct {
	Year     int                           `json:"year"`
	Month    int                           `json:"month"`
	DataType pnl.DataType                  `json:"data_type"`
	Values   map[pnl.Field]decimal.Decimal `json:"values"`
}

type syncResponse struct {
	*pnl.Result
	Records []recordResponse `json:"records,omitempty"`
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	var (
		g    grid.Grid
		opts pnl.SyncOptions
		err  error
	)

	opts.ClassifyOptions = h.defaults

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		g, err = h.fromUpload(r, &opts)
	case "application/json":
		g, err = h.fromRemote(r, &opts)
	default:
		http.Error(w, "expected multipart/form-data or application/json", http.StatusUnsupportedMediaType)
		return
	}

	if err != nil {
		var reqErr requestError
		if errors.As(err, &reqErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to load sheet", "error", err)
		http.Error(w, "failed to load sheet: "+err.Error(), http.StatusBadGateway)

		return
	}

	res, err := h.svc.Sync(r.Context(), g, opts)

	status := http.StatusOK

	switch {
	case errors.Is(err, pnl.ErrNoHeaderFound), errors.Is(err, pnl.ErrNoMonthColumns):
		status = http.StatusUnprocessableEntity
	case err != nil, res.Status == pnl.StatusFailed:
		status = http.StatusInternalServerError
	case res.Status == pnl.StatusPartial:
		status = http.StatusMultiStatus
	}

	resp := syncResponse{Result: res}
	if res.DryRun {
		resp.Records = toRecordResponses(res.Records)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// requestError is a problem with the request itself rather than the sheet.
type requestError struct {
	msg string
}

func (e requestError) Error() string { return e.msg }

func (h *Handler) fromUpload(r *http.Request, opts *pnl.SyncOptions) (grid.Grid, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, requestError{"failed to parse form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, requestError{"file field is required"}
	}
	defer file.Close()

	if err := formOptions(r, opts); err != nil {
		return nil, err
	}

	g, err := source.NewReader(file, header.Filename, r.FormValue("sheet")).Fetch(r.Context())
	if err != nil {
		return nil, requestError{"failed to read upload: " + err.Error()}
	}

	return g, nil
}

func formOptions(r *http.Request, opts *pnl.SyncOptions) error {
	if s := r.FormValue("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return requestError{"invalid year"}
		}

		opts.YearOverride = year
	}

	if s := r.FormValue("header_row"); s != "" {
		row, err := strconv.Atoi(s)
		if err != nil || row < 0 {
			return requestError{"invalid header_row"}
		}

		opts.HeaderRow = new(row)
	}

	if s := r.FormValue("dry_run"); s != "" {
		dry, err := strconv.ParseBool(s)
		if err != nil {
			return requestError{"invalid dry_run"}
		}

		opts.DryRun = dry
	}

	return nil
}

func (h *Handler) fromRemote(r *http.Request, opts *pnl.SyncOptions) (grid.Grid, error) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, requestError{err.Error()}
	}

	if req.Year > 0 {
		opts.YearOverride = req.Year
	}

	if req.HeaderRow != nil {
		opts.HeaderRow = req.HeaderRow
	}

	opts.DryRun = req.DryRun

	src, err := h.remote(r.Context(), req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	return src.Fetch(ctx)
}

func (h *Handler) remote(ctx context.Context, req syncRequest) (source.Source, error) {
	switch req.Source {
	case "sheets":
		if h.sources.Sheets == nil {
			return nil, requestError{"sheets source is not configured"}
		}

		return h.sources.Sheets(ctx)
	case "csv_url":
		link := req.URL
		if link == "" {
			link = h.sources.DefaultCSVURL
		}

		if link == "" || h.sources.CSVURL == nil {
			return nil, requestError{"csv_url source needs a url"}
		}

		if !h.sources.allowed(link) {
			slog.Warn("rejected csv url", "url", link)
			return nil, requestError{"url is not an allowed published sheet link"}
		}

		return h.sources.CSVURL(link), nil
	default:
		return nil, requestError{fmt.Sprintf("unknown source %q", req.Source)}
	}
}

func toRecordResponses(recs []*pnl.Record) []recordResponse {
	resp := make([]recordResponse, len(recs))
	for i, rec := range recs {
		resp[i] = recordResponse{
			Year:     rec.Year,
			Month:    rec.Month,
			DataType: rec.DataType,
			Values:   rec.Values,
		}
	}

	return resp
}
