// Command plsync runs P&L sheet syncs from the command line.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/plsync/internal/config"
	"github.com/MrJamesThe3rd/plsync/internal/database"
)

type app struct {
	cfg *config.Config
	// local is a SQLite path that replaces the configured database.
	local  string
	pretty bool
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "plsync",
		Short:        "Sync the P&L spreadsheet into monthly budget and actual records",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.local, "local", "", "SQLite database path instead of the configured database (\":memory:\" for a scratch run)")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Pretty-print JSON output")

	root.AddCommand(newSyncCmd(a), newRecordsCmd(a))

	return root
}

func (a *app) openDB(ctx context.Context, fallback string) (*sql.DB, error) {
	driver, dsn := a.cfg.DB.Driver, a.cfg.DSN()

	switch {
	case a.local != "":
		driver, dsn = database.DriverSQLite, a.local
	case fallback != "":
		driver, dsn = database.DriverSQLite, fallback
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (a *app) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if a.pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}
