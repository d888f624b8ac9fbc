package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxSheetBytes = 10 << 20 // 10 MiB per sheet

// HTTPSource fetches tier sheets published as CSV over HTTP, one URL
// per priority code (e.g. Google Sheets export links).
type HTTPSource struct {
	client *http.Client
	urls   map[string]string
}

// NewHTTPSource creates an HTTPSource from a priority-code to URL map
func NewHTTPSource(urls map[string]string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		urls:   urls,
	}
}

// Fetch downloads and parses one sheet per priority code. A tier whose
// sheet cannot be fetched is reported in the SourceError slice and the
// remaining tiers still sync; only an empty code list is an error.
func (s *HTTPSource) Fetch(ctx context.Context, priorityCodes []string) ([]TierSheet, []SourceError, error) {
	if len(priorityCodes) == 0 {
		return nil, nil, fmt.Errorf("no priority codes to fetch")
	}

	sheets := make([]TierSheet, 0, len(priorityCodes))
	var sourceErrors []SourceError

	for _, code := range priorityCodes {
		url, ok := s.urls[code]
		if !ok {
			sourceErrors = append(sourceErrors, SourceError{
				PriorityCode: code,
				Code:         ErrCodeSheetUnavailable,
				Message:      "no sheet URL configured",
			})
			continue
		}

		rows, rowErrors, err := s.fetchOne(ctx, url)
		if err != nil {
			sourceErrors = append(sourceErrors, SourceError{
				PriorityCode: code,
				Code:         ErrCodeSheetUnavailable,
				Message:      err.Error(),
			})
			continue
		}

		sheets = append(sheets, TierSheet{
			PriorityCode: code,
			Rows:         rows,
			RowErrors:    rowErrors,
		})
	}

	return sheets, sourceErrors, nil
}

func (s *HTTPSource) fetchOne(ctx context.Context, url string) ([]Row, []RowError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build sheet request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode)
	}

	parser, err := NewParser(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return nil, nil, err
	}

	rows, rowErrors := parser.ParseAll()
	return rows, rowErrors, nil
}
