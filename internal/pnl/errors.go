package pnl

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ErrorKind classifies fatal sync failures.
type ErrorKind string

const (
	KindNoHeaderFound  ErrorKind = "no_header_found"
	KindNoMonthColumns ErrorKind = "no_month_columns"
)

// Error is a fatal classification failure. Debug carries the cells that
// were scanned so an operator can fix the sheet layout.
type Error struct {
	Kind  ErrorKind
	Msg   string
	Debug *Debug
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is matches errors of the same kind, so callers can test against
// ErrNoHeaderFound and ErrNoMonthColumns.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

var (
	ErrNoHeaderFound  = &Error{Kind: KindNoHeaderFound}
	ErrNoMonthColumns = &Error{Kind: KindNoMonthColumns}
)

// RowWarning is a non-fatal problem with one cell; the value counts as zero.
type RowWarning struct {
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	Raw     string `json:"raw"`
	Message string `json:"message"`
}

// WriteError records a failed upsert for one record.
type WriteError struct {
	Key Key    `json:"key"`
	Err string `json:"error"`
}

func (e WriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Key, e.Err)
}
