package source_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"

	"github.com/MrJamesThe3rd/plsync/internal/source"
)

func TestFormatOf(t *testing.T) {
	type testCase struct {
		name string
		file string
		want source.Format
	}

	tests := []testCase{
		{name: "CSV", file: "pnl.csv", want: source.FormatCSV},
		{name: "Workbook", file: "P&L 2025.XLSX", want: source.FormatXLSX},
		{name: "MacroWorkbook", file: "pnl.xlsm", want: source.FormatXLSX},
		{name: "NoExtension", file: "export", want: source.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, source.FormatOf(tt.file))
		})
	}
}

func TestReader_Fetch(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"", "", "", "", "", "Jan 25"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"1.", "", "Gross Sales", "", "", "1.000"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	g, err := source.NewReader(bytes.NewReader(buf.Bytes()), "upload.xlsx", "").Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Jan 25", g.Cell(0, 5))
	assert.Equal(t, "Gross Sales", g.Cell(1, 2))
}

func TestCSVURL_Fetch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "csv", r.URL.Query().Get("output"))
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(",,,,,Jan 25\n1.,,Wine,,,\"3,500\"\n"))
		}))
		defer srv.Close()

		g, err := source.NewCSVURL(srv.URL+"/pub?output=csv", time.Second).Fetch(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "3,500", g.Cell(1, 5))
	})

	t.Run("BadStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := source.NewCSVURL(srv.URL, time.Second).Fetch(context.Background())
		assert.ErrorContains(t, err, "403")
	})
}

func TestSheets_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-123/values/"), r.URL.Path)
		assert.Equal(t, "FORMATTED_VALUE", r.URL.Query().Get("valueRenderOption"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "'P&L'!A1:G2",
			"majorDimension": "ROWS",
			"values": [
				["", "", "", "", "", "Jan 25", "Jan-25 Actual"],
				["1.", "", "Gross Sales", "", "", "1.000.000", 950000]
			]
		}`))
	}))
	defer srv.Close()

	ctx := context.Background()

	s, err := source.NewSheets(ctx, "sheet-123", "P&L!A1:G2", nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	g, err := s.Fetch(ctx)
	require.NoError(t, err)

	require.Len(t, g, 2)
	assert.Equal(t, "Jan-25 Actual", g.Cell(0, 6))
	assert.Equal(t, "1.000.000", g.Cell(1, 5))
	assert.Equal(t, "950000", g.Cell(1, 6))
}
