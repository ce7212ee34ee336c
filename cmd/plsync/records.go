package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	pnlStore "github.com/MrJamesThe3rd/plsync/internal/pnl/store"
)

type recordOutput struct {
	Year     int                           `json:"year"`
	Month    int                           `json:"month"`
	DataType pnl.DataType                  `json:"data_type"`
	Values   map[pnl.Field]decimal.Decimal `json:"values"`
	SyncedAt *time.Time                    `json:"synced_at,omitempty"`
}

func toRecordOutputs(recs []*pnl.Record) []recordOutput {
	out := make([]recordOutput, len(recs))
	for i, rec := range recs {
		out[i] = recordOutput{Year: rec.Year, Month: rec.Month, DataType: rec.DataType, Values: rec.Values}
		if !rec.SyncedAt.IsZero() {
			out[i].SyncedAt = new(rec.SyncedAt)
		}
	}

	return out
}

func newRecordsCmd(a *app) *cobra.Command {
	var (
		year     int
		dataType string
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List stored records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := pnl.ListFilter{}

			if year > 0 {
				filter.Year = new(year)
			}

			if dataType != "" {
				dt, err := pnl.ParseDataType(dataType)
				if err != nil {
					return err
				}

				filter.DataType = new(dt)
			}

			db, err := a.openDB(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer db.Close()

			recs, err := pnl.NewService(pnlStore.New(db)).Records(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return a.writeJSON(cmd.OutOrStdout(), toRecordOutputs(recs))
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Only records of this year")
	cmd.Flags().StringVar(&dataType, "data-type", "", "Only budget or actual records")

	return cmd
}
