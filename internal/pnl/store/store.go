package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

// Store persists records, locks and overrides. Queries use $N placeholders
// in order of appearance, which both pgx and sqlite3 bind positionally.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func valueColumns() []string {
	defs := pnl.Fields()

	cols := make([]string, len(defs))
	for i, d := range defs {
		cols[i] = string(d.Field)
	}

	return cols
}

// upsertQuery replaces every value column of an existing row, so a field
// that disappeared from the sheet goes back to zero.
var upsertQuery = func() string {
	cols := append([]string{"id", "year", "month", "data_type"}, valueColumns()...)
	cols = append(cols, "synced_at")

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(cols))
	for _, c := range cols[4:] {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	return `INSERT INTO pl_records (` + strings.Join(cols, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (year, month, data_type) DO UPDATE SET ` + strings.Join(sets, ", ")
}()

var selectRecordColumns = "year, month, data_type, " + strings.Join(valueColumns(), ", ") + ", synced_at"

func (s *Store) UpsertRecord(ctx context.Context, rec *pnl.Record) error {
	defs := pnl.Fields()

	args := make([]any, 0, len(defs)+5)
	args = append(args, uuid.New(), rec.Year, rec.Month, string(rec.DataType))

	for _, d := range defs {
		args = append(args, rec.Get(d.Field))
	}

	args = append(args, rec.SyncedAt.UTC())

	if _, err := s.db.ExecContext(ctx, upsertQuery, args...); err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.Key, err)
	}

	return nil
}

func scanRecord(s scanner) (*pnl.Record, error) {
	defs := pnl.Fields()
	values := make([]decimal.Decimal, len(defs))

	var (
		key      pnl.Key
		dataType string
		syncedAt time.Time
	)

	dest := make([]any, 0, len(defs)+4)
	dest = append(dest, &key.Year, &key.Month, &dataType)

	for i := range values {
		dest = append(dest, &values[i])
	}

	dest = append(dest, &syncedAt)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	key.DataType = pnl.DataType(dataType)

	rec := pnl.NewRecord(key)
	for i, d := range defs {
		rec.Set(d.Field, values[i])
	}

	rec.SyncedAt = syncedAt.UTC()

	return rec, nil
}

func (s *Store) ListRecords(ctx context.Context, filter pnl.ListFilter) ([]*pnl.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM pl_records WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Year != nil {
		query += fmt.Sprintf(" AND year = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.DataType != nil {
		query += fmt.Sprintf(" AND data_type = $%d", argIdx)

		args = append(args, string(*filter.DataType))
	}

	query += " ORDER BY year ASC, month ASC, data_type ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var recs []*pnl.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return recs, nil
}

func (s *Store) ListLocks(ctx context.Context) ([]pnl.Lock, error) {
	query := `SELECT id, year, month, data_type, reason, created_at
		FROM record_locks
		ORDER BY year, month, data_type`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing locks: %w", err)
	}
	defer rows.Close()

	var locks []pnl.Lock

	for rows.Next() {
		var (
			l        pnl.Lock
			dataType string
		)

		if err := rows.Scan(&l.ID, &l.Year, &l.Month, &dataType, &l.Reason, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lock: %w", err)
		}

		l.DataType = pnl.DataType(dataType)
		locks = append(locks, l)
	}

	return locks, rows.Err()
}

// CreateLock inserts a lock, or updates the reason of an existing lock on
// the same key. lock.ID is set to the stored id.
func (s *Store) CreateLock(ctx context.Context, lock *pnl.Lock) error {
	query := `
		INSERT INTO record_locks (id, year, month, data_type, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (year, month, data_type) DO UPDATE SET reason = EXCLUDED.reason
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		lock.ID,
		lock.Year,
		lock.Month,
		string(lock.DataType),
		lock.Reason,
		lock.CreatedAt.UTC(),
	).Scan(&lock.ID)
	if err != nil {
		return fmt.Errorf("creating lock: %w", err)
	}

	return nil
}

func (s *Store) DeleteLock(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, "record_locks", id)
}

func (s *Store) ListOverrides(ctx context.Context) ([]pnl.Override, error) {
	query := `SELECT id, year, month, data_type, field, value, reason, created_at
		FROM field_overrides
		ORDER BY year, month, data_type, field`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var overrides []pnl.Override

	for rows.Next() {
		var (
			o               pnl.Override
			dataType, field string
		)

		if err := rows.Scan(&o.ID, &o.Year, &o.Month, &dataType, &field, &o.Value, &o.Reason, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}

		o.DataType = pnl.DataType(dataType)
		o.Field = pnl.Field(field)
		overrides = append(overrides, o)
	}

	return overrides, rows.Err()
}

// CreateOverride inserts an override, replacing the value of an existing
// override for the same field.
func (s *Store) CreateOverride(ctx context.Context, o *pnl.Override) error {
	query := `
		INSERT INTO field_overrides (id, year, month, data_type, field, value, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (year, month, data_type, field) DO UPDATE SET value = EXCLUDED.value, reason = EXCLUDED.reason
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		o.ID,
		o.Year,
		o.Month,
		string(o.DataType),
		string(o.Field),
		o.Value,
		o.Reason,
		o.CreatedAt.UTC(),
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("creating override: %w", err)
	}

	return nil
}

func (s *Store) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, "field_overrides", id)
}

func (s *Store) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	if n == 0 {
		return pnl.ErrNotFound
	}

	return nil
}

var _ pnl.Repository = (*Store)(nil)
