package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

// Sheets reads a range through the Sheets values API. Values are requested
// formatted, so amounts arrive exactly as the operator sees them.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	rng           string
}

// NewSheets builds a read-only Sheets client from service account
// credentials; with no credentials it falls back to application default
// credentials.
func NewSheets(ctx context.Context, spreadsheetID, rng string, credentialsJSON []byte, opts ...option.ClientOption) (*Sheets, error) {
	if len(credentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parsing credentials: %w", err)
		}

		opts = append(opts, option.WithCredentials(creds))
	} else {
		opts = append(opts, option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, rng: rng}, nil
}

func (s *Sheets) Fetch(ctx context.Context) (grid.Grid, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rng).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.rng, err)
	}

	slog.Info("fetched sheets range", "range", resp.Range, "rows", len(resp.Values))

	return grid.FromValues(resp.Values), nil
}

// Credentials returns inline JSON when set, otherwise the contents of file.
// Both empty means application default credentials.
func Credentials(file, inline string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}

	if file == "" {
		return nil, nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	return b, nil
}
