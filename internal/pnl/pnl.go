// Package pnl turns an operator-maintained P&L spreadsheet into monthly
// budget and actual financial records.
package pnl

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Section is the P&L block a row belongs to.
type Section string

const (
	SectionNone    Section = ""
	SectionRevenue Section = "revenue"
	SectionCOGS    Section = "cogs"
	SectionLabor   Section = "labor"
	SectionFixed   Section = "fixed"
	SectionOpex    Section = "opex"
	SectionOther   Section = "other"
)

// DataType separates planned from realised figures for the same month.
type DataType string

const (
	DataTypeBudget DataType = "budget"
	DataTypeActual DataType = "actual"
)

// ParseDataType validates a data type coming from a request or flag.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case DataTypeBudget, DataTypeActual:
		return DataType(s), nil
	}

	return "", fmt.Errorf("unknown data type %q", s)
}

// Key identifies a stored record.
type Key struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	DataType DataType `json:"data_type"`
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d/%s", k.Year, k.Month, k.DataType)
}

func (k Key) less(o Key) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}

	if k.Month != o.Month {
		return k.Month < o.Month
	}

	return k.DataType < o.DataType
}

// MonthColumn is a header cell that parsed as a month, e.g. "Jan-25 Actual".
type MonthColumn struct {
	Index  int  `json:"index"`
	Month  int  `json:"month"`
	Year   int  `json:"year"`
	Actual bool `json:"actual"`
}

// Key returns the record key values in this column are written to.
func (c MonthColumn) Key() Key {
	dt := DataTypeBudget
	if c.Actual {
		dt = DataTypeActual
	}

	return Key{Year: c.Year, Month: c.Month, DataType: dt}
}

// Record is the monthly financial record for one key.
type Record struct {
	Key
	Values   map[Field]decimal.Decimal
	SyncedAt time.Time
}

// NewRecord returns an empty record for key.
func NewRecord(key Key) *Record {
	return &Record{Key: key, Values: make(map[Field]decimal.Decimal)}
}

// Get returns the value of f, zero when unset.
func (r *Record) Get(f Field) decimal.Decimal {
	return r.Values[f]
}

func (r *Record) Set(f Field, v decimal.Decimal) {
	r.Values[f] = v
}

func (r *Record) Add(f Field, v decimal.Decimal) {
	r.Values[f] = r.Values[f].Add(v)
}

// HasActivity reports whether any revenue or expense field is nonzero.
func (r *Record) HasActivity() bool {
	for _, def := range fieldDefs {
		if def.Kind == KindRatio {
			continue
		}

		if !r.Get(def.Field).IsZero() {
			return true
		}
	}

	return false
}

// Equal compares two records value by value, ignoring SyncedAt.
func (r *Record) Equal(o *Record) bool {
	if r.Key != o.Key {
		return false
	}

	for _, def := range fieldDefs {
		if !r.Get(def.Field).Equal(o.Get(def.Field)) {
			return false
		}
	}

	return true
}

// SortRecords orders records by year, month then data type.
func SortRecords(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Key.less(recs[j].Key)
	})
}
