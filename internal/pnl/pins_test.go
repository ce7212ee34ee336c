package pnl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

func TestLoadPins(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		doc := `
[[lock]]
year = 2025
month = 1
data_type = "budget"
reason = "approved budget"

[[override]]
year = 2025
month = 3
data_type = "actual"
field = "ebit"
value = "-12.500.000"
reason = "one-off write-off booked late"
`

		locks, overrides, err := pnl.LoadPins(strings.NewReader(doc))
		require.NoError(t, err)

		require.Len(t, locks, 1)
		assert.Equal(t, jan25Budget, locks[0].Key)
		assert.Equal(t, "approved budget", locks[0].Reason)

		require.Len(t, overrides, 1)
		assert.Equal(t, pnl.Key{Year: 2025, Month: 3, DataType: pnl.DataTypeActual}, overrides[0].Key)
		assert.Equal(t, pnl.FieldEBIT, overrides[0].Field)
		assert.Equal(t, "-12500000", overrides[0].Value.String())
	})

	t.Run("InvalidKey", func(t *testing.T) {
		doc := "[[lock]]\nyear = 2025\nmonth = 13\ndata_type = \"budget\"\n"

		_, _, err := pnl.LoadPins(strings.NewReader(doc))
		assert.ErrorContains(t, err, "lock 1")
	})

	t.Run("Malformed", func(t *testing.T) {
		_, _, err := pnl.LoadPins(strings.NewReader("[[lock]\n"))
		assert.ErrorContains(t, err, "decode pins")
	})
}

func TestNewOverride(t *testing.T) {
	type args struct {
		year     int
		month    int
		dataType string
		field    string
		value    string
	}

	type testCase struct {
		name    string
		args    args
		wantErr string
	}

	tests := []testCase{
		{name: "Total", args: args{2025, 2, "actual", "net_sales", "1.000"}},
		{name: "LineItem", args: args{2025, 2, "budget", "labor_13th", "250"}},
		{name: "Ratio", args: args{2025, 2, "actual", "ebit_margin", "10"}, wantErr: "derived"},
		{name: "UnknownField", args: args{2025, 2, "actual", "tips", "10"}, wantErr: "unknown field"},
		{name: "BadDataType", args: args{2025, 2, "forecast", "ebit", "10"}, wantErr: "unknown data type"},
		{name: "BadYear", args: args{1999, 2, "actual", "ebit", "10"}, wantErr: "year"},
		{name: "BadValue", args: args{2025, 2, "actual", "ebit", "ten"}, wantErr: "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pnl.NewOverride(tt.args.year, tt.args.month, tt.args.dataType, tt.args.field, tt.args.value)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, pnl.Field(tt.args.field), got.Field)
		})
	}
}

func TestPins_Locked(t *testing.T) {
	var nilPins *pnl.Pins

	_, ok := nilPins.Locked(jan25Budget)
	assert.False(t, ok)

	pins := pnl.NewPins([]pnl.Lock{{Key: jan25Budget, Reason: "closed"}}, nil)

	lock, ok := pins.Locked(jan25Budget)
	assert.True(t, ok)
	assert.Equal(t, "closed", lock.Reason)

	_, ok = pins.Locked(jan25Actual)
	assert.False(t, ok)

	pins.Merge([]pnl.Lock{{Key: jan25Actual}}, nil)

	_, ok = pins.Locked(jan25Actual)
	assert.True(t, ok)
}
