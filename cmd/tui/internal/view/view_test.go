package view_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/plsync/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

func TestFormatAmount(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	tests := map[string]testCase{
		"Zero":        {in: "0", want: "0"},
		"Hundreds":    {in: "950", want: "950"},
		"Grouped":     {in: "1250000", want: "1,250,000"},
		"Negative":    {in: "-48000", want: "-48,000"},
		"Fractional":  {in: "1234.5", want: "1,234.50"},
		"SmallNegFrc": {in: "-0.25", want: "-0.25"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, view.FormatAmount(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "Mar 2024 actual", view.FormatKey(pnl.Key{Year: 2024, Month: 3, DataType: pnl.DataTypeActual}))
	assert.Equal(t, "33.33%", view.FormatPct(decimal.RequireFromString("33.33")))
}

func TestRecordsModel_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pnl.NewMockRepository(ctrl)

	rec := pnl.NewRecord(pnl.Key{Year: 2025, Month: 1, DataType: pnl.DataTypeBudget})
	rec.Set(pnl.FieldGrossSales, decimal.NewFromInt(1250000))
	rec.Set(pnl.FieldCOGSPct, decimal.RequireFromString("24"))

	repo.EXPECT().ListRecords(gomock.Any(), pnl.ListFilter{}).
		DoAndReturn(func(_ context.Context, _ pnl.ListFilter) ([]*pnl.Record, error) {
			return []*pnl.Record{rec}, nil
		})

	m := view.NewRecordsModel(pnl.NewService(repo))
	assert.Contains(t, m.View(), "Loading records")

	msg := m.Init()()
	updated, _ := m.Update(msg)

	out := updated.(view.RecordsModel).View()
	assert.Contains(t, out, "Jan 2025 budget")
	assert.Contains(t, out, "1,250,000")
	assert.Contains(t, out, "24.00%")
	assert.Contains(t, out, "1 records")
}

func TestRecordsModel_EscGoesBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pnl.NewMockRepository(ctrl)

	m := view.NewRecordsModel(pnl.NewService(repo))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, view.BackMsg{}, cmd())
}
