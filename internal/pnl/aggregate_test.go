package pnl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

func record(key pnl.Key, values map[pnl.Field]int64) *pnl.Record {
	rec := pnl.NewRecord(key)
	for f, v := range values {
		rec.Set(f, decimal.NewFromInt(v))
	}

	return rec
}

func TestAggregate(t *testing.T) {
	type args struct {
		values map[pnl.Field]int64
		pins   *pnl.Pins
	}

	type testCase struct {
		name string
		args args
		want map[pnl.Field]string
	}

	tests := []testCase{
		{
			name: "GrossSalesFromItems",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldRevenueWine: 100,
				pnl.FieldRevenueBeer: 50,
			}},
			want: map[pnl.Field]string{
				pnl.FieldGrossSales:  "150",
				pnl.FieldNetSales:    "150",
				pnl.FieldGrossProfit: "150",
				pnl.FieldEBIT:        "150",
				pnl.FieldGrossMargin: "100",
			},
		},
		{
			name: "StoredTotalsKept",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldRevenueFood: 100,
				pnl.FieldGrossSales:  120,
				pnl.FieldCOGSFood:    30,
				pnl.FieldCOGSTotal:   40,
			}},
			want: map[pnl.Field]string{
				pnl.FieldGrossSales: "120",
				pnl.FieldCOGSTotal:  "40",
			},
		},
		{
			name: "NetSalesSubtractsDiscounts",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldGrossSales: 1000,
				pnl.FieldDiscounts:  -100,
			}},
			want: map[pnl.Field]string{
				pnl.FieldNetSales:    "900",
				pnl.FieldGrossProfit: "900",
			},
		},
		{
			name: "FullWaterfall",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldRevenueFood:   800,
				pnl.FieldRevenueWine:   200,
				pnl.FieldCOGSFood:      240,
				pnl.FieldCOGSWine:      60,
				pnl.FieldLaborSalary:   200,
				pnl.FieldLabor13th:     20,
				pnl.FieldFixedRental:   100,
				pnl.FieldOpexMarketing: 30,
			}},
			want: map[pnl.Field]string{
				pnl.FieldGrossSales:  "1000",
				pnl.FieldNetSales:    "1000",
				pnl.FieldCOGSTotal:   "300",
				pnl.FieldLaborTotal:  "220",
				pnl.FieldFixedTotal:  "100",
				pnl.FieldOpexTotal:   "30",
				pnl.FieldGrossProfit: "700",
				pnl.FieldEBIT:        "350",
				pnl.FieldCOGSPct:     "30",
				pnl.FieldLaborPct:    "22",
				pnl.FieldGrossMargin: "70",
				pnl.FieldEBITMargin:  "35",
			},
		},
		{
			name: "StaleOpexTotalReplaced",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldGrossSales:      1000,
				pnl.FieldOpexUtilities:   150,
				pnl.FieldOpexMaintenance: 60,
				pnl.FieldOpexTotal:       100,
			}},
			want: map[pnl.Field]string{pnl.FieldOpexTotal: "210"},
		},
		{
			name: "OpexTotalWithinFactorKept",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldGrossSales:    1000,
				pnl.FieldOpexUtilities: 150,
				pnl.FieldOpexTotal:     100,
			}},
			want: map[pnl.Field]string{pnl.FieldOpexTotal: "100"},
		},
		{
			name: "StaleFixedTotalReplaced",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldGrossSales:  1000,
				pnl.FieldFixedRental: 500,
				pnl.FieldFixedTotal:  50,
			}},
			want: map[pnl.Field]string{pnl.FieldFixedTotal: "500"},
		},
		{
			name: "LaborTotalNeverRecomputedWhenStored",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldGrossSales:  1000,
				pnl.FieldLaborSalary: 900,
				pnl.FieldLaborTotal:  100,
			}},
			want: map[pnl.Field]string{pnl.FieldLaborTotal: "100"},
		},
		{
			name: "ZeroNetSalesZeroRatios",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldCOGSFood:    10,
				pnl.FieldLaborSalary: 20,
			}},
			want: map[pnl.Field]string{
				pnl.FieldNetSales:    "0",
				pnl.FieldCOGSPct:     "0",
				pnl.FieldLaborPct:    "0",
				pnl.FieldGrossMargin: "0",
				pnl.FieldEBITMargin:  "0",
			},
		},
		{
			name: "RatiosRoundedToTwoPlaces",
			args: args{values: map[pnl.Field]int64{
				pnl.FieldNetSales: 3,
				pnl.FieldCOGSFood: 1,
			}},
			want: map[pnl.Field]string{pnl.FieldCOGSPct: "33.33"},
		},
		{
			name: "OverrideAppliedBeforeRatios",
			args: args{
				values: map[pnl.Field]int64{
					pnl.FieldGrossSales: 1000,
					pnl.FieldCOGSFood:   400,
				},
				pins: pnl.NewPins(nil, []pnl.Override{
					{Key: jan25Budget, Field: pnl.FieldEBIT, Value: decimal.NewFromInt(-250)},
				}),
			},
			want: map[pnl.Field]string{
				pnl.FieldEBIT:        "-250",
				pnl.FieldEBITMargin:  "-25",
				pnl.FieldGrossMargin: "60",
			},
		},
		{
			name: "LineItemOverrideReachesTotals",
			args: args{
				values: map[pnl.Field]int64{
					pnl.FieldRevenueFood: 600,
					pnl.FieldRevenueWine: 100,
					pnl.FieldCOGSWine:    50,
				},
				pins: pnl.NewPins(nil, []pnl.Override{
					{Key: jan25Budget, Field: pnl.FieldRevenueWine, Value: decimal.NewFromInt(400)},
				}),
			},
			want: map[pnl.Field]string{
				pnl.FieldRevenueWine: "400",
				pnl.FieldGrossSales:  "1000",
				pnl.FieldNetSales:    "1000",
				pnl.FieldCOGSPct:     "5",
			},
		},
		{
			name: "OverrideForOtherKeyIgnored",
			args: args{
				values: map[pnl.Field]int64{pnl.FieldGrossSales: 1000},
				pins: pnl.NewPins(nil, []pnl.Override{
					{Key: jan25Actual, Field: pnl.FieldEBIT, Value: decimal.NewFromInt(1)},
				}),
			},
			want: map[pnl.Field]string{pnl.FieldEBIT: "1000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := map[pnl.Key]*pnl.Record{jan25Budget: record(jan25Budget, tt.args.values)}

			got := pnl.Aggregate(in, tt.args.pins)
			require.Len(t, got, 1)

			for f, want := range tt.want {
				assert.Equal(t, want, got[0].Get(f).String(), f)
			}
		})
	}
}

func TestAggregate_DropsInactiveRecords(t *testing.T) {
	g := grid.Grid{
		{"", "", "", "", "", "Jan 25", "Jan-25 Actual", "Feb 25"},
		{"1", "", "Revenue"},
		{"1.1", "", "Wine", "", "", "100", "0", "-"},
		{"1.2", "", "Beer", "", "", "50", "", "0"},
		{"", "", "Gross Sales", "", "", "", "", ""},
	}

	cls, err := pnl.Classify(g, pnl.ClassifyOptions{})
	require.NoError(t, err)
	require.Len(t, cls.Records, 3)

	got := pnl.Aggregate(cls.Records, nil)
	require.Len(t, got, 1)
	assert.Equal(t, jan25Budget, got[0].Key)
	assert.Equal(t, "150", got[0].Get(pnl.FieldGrossSales).String())
}

func TestAggregate_Deterministic(t *testing.T) {
	g := grid.Grid{
		header(),
		{"1", "", "Revenue"},
		{"1.1", "", "Food", "", "", "1.000", "900"},
		{"2", "", "COGS"},
		{"2.1", "", "Food", "", "", "300", "310"},
		{"3", "", "Labor"},
		{"3.1", "", "Salaries", "", "", "200", "205"},
	}

	run := func() []*pnl.Record {
		cls, err := pnl.Classify(g, pnl.ClassifyOptions{})
		require.NoError(t, err)

		return pnl.Aggregate(cls.Records, nil)
	}

	first, second := run(), run()
	require.Len(t, first, 2)
	require.Len(t, second, 2)

	for i := range first {
		assert.True(t, first[i].Equal(second[i]), first[i].Key)
	}
}
