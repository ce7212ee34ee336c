package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
)

// CSVURL downloads a sheet published as CSV
// (".../pub?output=csv" or ".../export?format=csv").
type CSVURL struct {
	url    string
	client *http.Client
}

func NewCSVURL(url string, timeout time.Duration) *CSVURL {
	return &CSVURL{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *CSVURL) Fetch(ctx context.Context) (grid.Grid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching csv: unexpected status %d", resp.StatusCode)
	}

	g, err := grid.ParseCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	slog.Info("fetched csv sheet", "rows", len(g))

	return g, nil
}
