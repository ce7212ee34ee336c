package pnl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pnl
type Repository interface {
	UpsertRecord(ctx context.Context, rec *Record) error
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)

	ListLocks(ctx context.Context) ([]Lock, error)
	CreateLock(ctx context.Context, lock *Lock) error
	DeleteLock(ctx context.Context, id uuid.UUID) error

	ListOverrides(ctx context.Context) ([]Override, error)
	CreateOverride(ctx context.Context, o *Override) error
	DeleteOverride(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	Year     *int
	DataType *DataType
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SyncOptions tune one sync run.
type SyncOptions struct {
	ClassifyOptions
	// DryRun classifies and aggregates but writes nothing.
	DryRun bool
	// Locks and Overrides are added to the stored pins for this run only.
	Locks     []Lock
	Overrides []Override
}

// Status of a finished run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Result is the outcome of a sync, including on failure.
type Result struct {
	RunID            uuid.UUID    `json:"run_id"`
	Status           Status       `json:"status"`
	Success          bool         `json:"success"`
	DryRun           bool         `json:"dry_run"`
	Error            string       `json:"error,omitempty"`
	RecordsProcessed int          `json:"records_processed"`
	MonthsFound      int          `json:"months_found"`
	Categories       []Field      `json:"categories"`
	Locked           []Key        `json:"locked,omitempty"`
	Errors           []WriteError `json:"errors,omitempty"`
	ErrorCount       int          `json:"error_count"`
	Debug            *Debug       `json:"debug"`
	// Records holds the aggregated records; omitted from JSON.
	Records []*Record `json:"-"`
}

// Sync runs classify, aggregate and write over g. Fatal classification
// errors come back both as a failed Result, carrying the debug dump, and as
// the returned error. Write errors only degrade the status to partial.
func (s *Service) Sync(ctx context.Context, g grid.Grid, opts SyncOptions) (*Result, error) {
	res := &Result{RunID: uuid.New(), DryRun: opts.DryRun, Categories: []Field{}}
	log := slog.With("run_id", res.RunID)

	pins, err := s.loadPins(ctx)
	if err != nil {
		return s.fail(res, err), err
	}

	pins.Merge(opts.Locks, opts.Overrides)

	cls, err := Classify(g, opts.ClassifyOptions)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			res.Debug = cerr.Debug
		}

		log.Warn("classification failed", "error", err)

		return s.fail(res, err), err
	}

	res.Debug = cls.Debug
	res.MonthsFound = len(cls.Columns)

	records := Aggregate(cls.Records, pins)
	res.Records = records
	res.Categories = recognised(records)

	log.Info("sheet classified",
		"header_row", cls.Debug.HeaderRow,
		"months", len(cls.Columns),
		"records", len(records),
		"warnings", cls.Debug.WarningCount,
	)

	if opts.DryRun {
		for _, rec := range records {
			if _, ok := pins.Locked(rec.Key); ok {
				res.Locked = append(res.Locked, rec.Key)
			}
		}

		res.RecordsProcessed = len(records)
		res.Status = StatusSuccess
		res.Success = true

		return res, nil
	}

	report := NewWriter(s.repo, s.now).Write(ctx, records, pins)
	res.RecordsProcessed = len(report.Written)
	res.Locked = report.Locked
	res.Errors = report.Errors
	res.ErrorCount = report.ErrorCount

	switch {
	case report.ErrorCount == 0:
		res.Status = StatusSuccess
	case len(report.Written) > 0:
		res.Status = StatusPartial
	default:
		res.Status = StatusFailed
	}

	res.Success = res.Status != StatusFailed

	log.Info("sync finished",
		"status", res.Status,
		"written", len(report.Written),
		"locked", len(report.Locked),
		"errors", report.ErrorCount,
	)

	return res, nil
}

func (s *Service) fail(res *Result, err error) *Result {
	res.Status = StatusFailed
	res.Success = false
	res.Error = err.Error()

	return res
}

func (s *Service) loadPins(ctx context.Context) (*Pins, error) {
	locks, err := s.repo.ListLocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading locks: %w", err)
	}

	overrides, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	return NewPins(locks, overrides), nil
}

// recognised lists the line items and totals with a value in any record.
func recognised(records []*Record) []Field {
	seen := make(map[Field]bool)

	for _, rec := range records {
		for f, v := range rec.Values {
			if fieldIndex[f].Kind == KindRatio || v.IsZero() {
				continue
			}

			seen[f] = true
		}
	}

	out := make([]Field, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (s *Service) Records(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

func (s *Service) Locks(ctx context.Context) ([]Lock, error) {
	return s.repo.ListLocks(ctx)
}

func (s *Service) Lock(ctx context.Context, key Key, reason string) (*Lock, error) {
	lock := &Lock{ID: uuid.New(), Key: key, Reason: reason, CreatedAt: s.now().UTC()}
	if err := s.repo.CreateLock(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

func (s *Service) Unlock(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteLock(ctx, id)
}

func (s *Service) Overrides(ctx context.Context) ([]Override, error) {
	return s.repo.ListOverrides(ctx)
}

func (s *Service) Override(ctx context.Context, o Override) (*Override, error) {
	o.ID = uuid.New()
	o.CreatedAt = s.now().UTC()

	if err := s.repo.CreateOverride(ctx, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

func (s *Service) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOverride(ctx, id)
}
