package pnl

import (
	"context"
	"log/slog"
	"time"
)

// RecordWriter persists one record, replacing any previous values for its
// key.
type RecordWriter interface {
	UpsertRecord(ctx context.Context, rec *Record) error
}

// WriteReport summarises a batch of upserts.
type WriteReport struct {
	Written    []Key
	Locked     []Key
	Errors     []WriteError
	ErrorCount int
}

// Writer upserts aggregated records one by one. A failed record does not
// stop the batch.
type Writer struct {
	repo RecordWriter
	now  func() time.Time
}

func NewWriter(repo RecordWriter, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}

	return &Writer{repo: repo, now: now}
}

func (w *Writer) Write(ctx context.Context, records []*Record, pins *Pins) WriteReport {
	var report WriteReport

	syncedAt := w.now().UTC()

	for _, rec := range records {
		if lock, ok := pins.Locked(rec.Key); ok {
			slog.Info("skipping locked record", "key", rec.Key.String(), "reason", lock.Reason)
			report.Locked = append(report.Locked, rec.Key)

			continue
		}

		rec.SyncedAt = syncedAt

		if err := w.repo.UpsertRecord(ctx, rec); err != nil {
			slog.Error("failed to write record", "key", rec.Key.String(), "error", err)

			report.ErrorCount++
			if len(report.Errors) < maxErrorSamples {
				report.Errors = append(report.Errors, WriteError{Key: rec.Key, Err: err.Error()})
			}

			continue
		}

		report.Written = append(report.Written, rec.Key)
	}

	return report
}
