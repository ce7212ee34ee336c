package pnl

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Lock protects a stored record from being overwritten by a re-sync.
type Lock struct {
	Key
	ID        uuid.UUID
	Reason    string
	CreatedAt time.Time
}

// Override pins one field of one record to an operator-supplied value,
// for cells the upstream sheet is known to report wrongly.
type Override struct {
	Key
	ID        uuid.UUID
	Field     Field
	Value     decimal.Decimal
	Reason    string
	CreatedAt time.Time
}

// Pins is the set of locks and overrides consulted during a sync.
type Pins struct {
	locks     map[Key]Lock
	overrides map[Key][]Override
}

// NewPins indexes locks and overrides by record key.
func NewPins(locks []Lock, overrides []Override) *Pins {
	p := &Pins{
		locks:     make(map[Key]Lock, len(locks)),
		overrides: make(map[Key][]Override),
	}

	p.Merge(locks, overrides)

	return p
}

// Merge adds more pins; later overrides for the same field win.
func (p *Pins) Merge(locks []Lock, overrides []Override) {
	for _, l := range locks {
		p.locks[l.Key] = l
	}

	for _, o := range overrides {
		p.overrides[o.Key] = append(p.overrides[o.Key], o)
	}
}

// Locked reports whether the record for key must not be written.
func (p *Pins) Locked(key Key) (Lock, bool) {
	if p == nil {
		return Lock{}, false
	}

	l, ok := p.locks[key]

	return l, ok
}

// apply sets the overridden fields of rec that are of the given kind.
func (p *Pins) apply(rec *Record, kind FieldKind) {
	if p == nil {
		return
	}

	for _, o := range p.overrides[rec.Key] {
		if fieldIndex[o.Field].Kind == kind {
			rec.Set(o.Field, o.Value)
		}
	}
}

// pinsFile is the TOML layout of a pins file:
//
//	[[lock]]
//	year = 2025
//	month = 1
//	data_type = "budget"
//	reason = "hand corrected"
//
//	[[override]]
//	year = 2025
//	month = 3
//	data_type = "actual"
//	field = "ebit"
//	value = "125000000"
type pinsFile struct {
	Locks []struct {
		Year     int    `toml:"year"`
		Month    int    `toml:"month"`
		DataType string `toml:"data_type"`
		Reason   string `toml:"reason"`
	} `toml:"lock"`
	Overrides []struct {
		Year     int    `toml:"year"`
		Month    int    `toml:"month"`
		DataType string `toml:"data_type"`
		Field    string `toml:"field"`
		Value    string `toml:"value"`
		Reason   string `toml:"reason"`
	} `toml:"override"`
}

// LoadPins reads locks and overrides from a TOML pins file.
func LoadPins(r io.Reader) ([]Lock, []Override, error) {
	var f pinsFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("decode pins: %w", err)
	}

	locks := make([]Lock, 0, len(f.Locks))

	for i, l := range f.Locks {
		key, err := NewKey(l.Year, l.Month, l.DataType)
		if err != nil {
			return nil, nil, fmt.Errorf("lock %d: %w", i+1, err)
		}

		locks = append(locks, Lock{Key: key, Reason: l.Reason})
	}

	overrides := make([]Override, 0, len(f.Overrides))

	for i, o := range f.Overrides {
		ov, err := NewOverride(o.Year, o.Month, o.DataType, o.Field, o.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("override %d: %w", i+1, err)
		}

		ov.Reason = o.Reason
		overrides = append(overrides, ov)
	}

	return locks, overrides, nil
}

// NewKey validates the parts of a record key.
func NewKey(year, month int, dataType string) (Key, error) {
	dt, err := ParseDataType(dataType)
	if err != nil {
		return Key{}, err
	}

	if month < 1 || month > 12 {
		return Key{}, fmt.Errorf("month %d out of range", month)
	}

	if year < 2000 || year > 2100 {
		return Key{}, fmt.Errorf("year %d out of range", year)
	}

	return Key{Year: year, Month: month, DataType: dt}, nil
}

// NewOverride validates an override; ratio fields cannot be pinned because
// they are recomputed after overrides are applied.
func NewOverride(year, month int, dataType, field, value string) (Override, error) {
	key, err := NewKey(year, month, dataType)
	if err != nil {
		return Override{}, err
	}

	def, err := LookupField(field)
	if err != nil {
		return Override{}, err
	}

	if def.Kind == KindRatio {
		return Override{}, fmt.Errorf("field %q is derived and cannot be overridden", field)
	}

	v, err := ParseAmount(value)
	if err != nil {
		return Override{}, err
	}

	return Override{Key: key, Field: def.Field, Value: v}, nil
}
