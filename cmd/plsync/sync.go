package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	pnlStore "github.com/MrJamesThe3rd/plsync/internal/pnl/store"
	"github.com/MrJamesThe3rd/plsync/internal/source"
)

type syncFlags struct {
	file      string
	sheet     string
	url       string
	sheets    bool
	year      int
	headerRow int
	dryRun    bool
	pins      string
}

func newSyncCmd(a *app) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Classify the sheet and upsert one record per month and data type",
		Example: `  plsync sync --file pnl.csv --dry-run --pretty
  plsync sync --url "https://docs.google.com/spreadsheets/d/e/.../pub?output=csv"
  plsync sync --sheets --pins pins.toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSync(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "CSV or XLSX export of the sheet")
	flags.StringVar(&f.sheet, "sheet", "", "Worksheet name inside an XLSX file (default: first)")
	flags.StringVar(&f.url, "url", "", "Published CSV link of the sheet")
	flags.BoolVar(&f.sheets, "sheets", false, "Read the configured range through the Sheets API")
	flags.IntVar(&f.year, "year", 0, "Replace the year of every month column")
	flags.IntVar(&f.headerRow, "header-row", -1, "Use this 0-based row as the month header instead of detecting it")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Classify and aggregate without writing. Without --local the preview runs on a scratch database, so only the seeded locks and --pins apply; add --local to read the locks and overrides stored there")
	flags.StringVar(&f.pins, "pins", "", "TOML file with extra locks and overrides for this run")

	cmd.MarkFlagsMutuallyExclusive("file", "url", "sheets")
	cmd.MarkFlagsOneRequired("file", "url", "sheets")

	return cmd
}

func (a *app) source(ctx context.Context, f syncFlags) (source.Source, func(), error) {
	switch {
	case f.file != "":
		file, err := os.Open(f.file)
		if err != nil {
			return nil, nil, err
		}

		return source.NewReader(file, f.file, f.sheet), func() { file.Close() }, nil
	case f.url != "":
		return source.NewCSVURL(f.url, a.cfg.Sheets.FetchTimeout), func() {}, nil
	default:
		creds, err := source.Credentials(a.cfg.Sheets.CredentialsFile, a.cfg.Sheets.CredentialsJSON)
		if err != nil {
			return nil, nil, err
		}

		if a.cfg.Sheets.SpreadsheetID == "" {
			return nil, nil, errors.New("SHEETS_SPREADSHEET_ID is not set")
		}

		src, err := source.NewSheets(ctx, a.cfg.Sheets.SpreadsheetID, a.cfg.Sheets.Range, creds)
		if err != nil {
			return nil, nil, err
		}

		return src, func() {}, nil
	}
}

func (a *app) runSync(cmd *cobra.Command, f syncFlags) error {
	ctx := cmd.Context()

	opts := pnl.SyncOptions{
		ClassifyOptions: pnl.ClassifyOptions{YearOverride: a.cfg.Sync.YearOverride, HeaderRow: a.cfg.HeaderRow()},
		DryRun:          f.dryRun,
	}

	if f.year > 0 {
		opts.YearOverride = f.year
	}

	if f.headerRow >= 0 {
		opts.HeaderRow = new(f.headerRow)
	}

	pinsPath := f.pins
	if pinsPath == "" {
		pinsPath = a.cfg.Sync.PinsFile
	}

	if pinsPath != "" {
		file, err := os.Open(pinsPath)
		if err != nil {
			return err
		}

		opts.Locks, opts.Overrides, err = pnl.LoadPins(file)
		file.Close()

		if err != nil {
			return fmt.Errorf("%s: %w", pinsPath, err)
		}
	}

	src, done, err := a.source(ctx, f)
	if err != nil {
		return err
	}
	defer done()

	g, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	// A dry run never writes, so it can run against a scratch database
	// holding just the seeded locks. --local takes precedence, which is how
	// a preview picks up stored pins.
	fallback := ""
	if f.dryRun {
		fallback = ":memory:"
	}

	db, err := a.openDB(ctx, fallback)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := pnl.NewService(pnlStore.New(db))

	started := time.Now()

	res, syncErr := svc.Sync(ctx, g, opts)

	if err := a.writeJSON(cmd.OutOrStdout(), toOutput(res)); err != nil {
		return err
	}

	cmd.PrintErrf("%s in %s: %d written, %d locked, %d errors\n",
		res.Status, time.Since(started).Round(time.Millisecond), res.RecordsProcessed, len(res.Locked), res.ErrorCount)

	if syncErr != nil {
		return syncErr
	}

	if res.Status == pnl.StatusFailed {
		return errors.New("no record could be written")
	}

	return nil
}

type output struct {
	*pnl.Result
	Records []recordOutput `json:"records,omitempty"`
}

func toOutput(res *pnl.Result) output {
	out := output{Result: res}
	if res.DryRun {
		out.Records = toRecordOutputs(res.Records)
	}

	return out
}
