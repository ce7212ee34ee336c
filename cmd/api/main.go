package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/plsync/internal/config"
	"github.com/MrJamesThe3rd/plsync/internal/database"
	plHttp "github.com/MrJamesThe3rd/plsync/internal/http"
	pinHandler "github.com/MrJamesThe3rd/plsync/internal/http/pin"
	recordHandler "github.com/MrJamesThe3rd/plsync/internal/http/record"
	syncHandler "github.com/MrJamesThe3rd/plsync/internal/http/syncrun"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	pnlStore "github.com/MrJamesThe3rd/plsync/internal/pnl/store"
	"github.com/MrJamesThe3rd/plsync/internal/source"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	pnlService := pnl.NewService(pnlStore.New(db))

	sources := syncHandler.Sources{
		CSVURL: func(url string) source.Source {
			return source.NewCSVURL(url, cfg.Sheets.FetchTimeout)
		},
		DefaultCSVURL: cfg.Sheets.CSVURL,
		AllowedHosts:  cfg.Sheets.CSVAllowedHosts,
	}

	if cfg.Sheets.SpreadsheetID != "" {
		sources.Sheets = func(ctx context.Context) (source.Source, error) {
			creds, err := source.Credentials(cfg.Sheets.CredentialsFile, cfg.Sheets.CredentialsJSON)
			if err != nil {
				return nil, err
			}

			return source.NewSheets(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, creds)
		}
	}

	defaults := pnl.ClassifyOptions{YearOverride: cfg.Sync.YearOverride, HeaderRow: cfg.HeaderRow()}

	var (
		syncH   = syncHandler.NewHandler(pnlService, sources, defaults, cfg.Server.MaxUploadSize)
		recordH = recordHandler.NewHandler(pnlService)
		pinH    = pinHandler.NewHandler(pnlService)
	)

	router := plHttp.New(plHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, syncH, recordH, pinH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is not set, the API accepts requests without a token")
	}

	slog.Info("starting server", "addr", server.Addr, "db_driver", cfg.DB.Driver)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
