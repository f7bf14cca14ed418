package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DatasetLoader = (*HTTPLoader)(nil)

// HTTPLoader fetches <baseURL>/<event>/data.json from a static host such as
// GitHub Pages.
type HTTPLoader struct {
	client  *http.Client
	baseURL string
}

// NewHTTPLoader creates an HTTPLoader. The client's timeout bounds each fetch.
func NewHTTPLoader(client *http.Client, baseURL string) *HTTPLoader {
	return &HTTPLoader{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Load performs one GET for the event dataset. Transport failures and
// non-2xx responses are *model.FetchError.
func (l *HTTPLoader) Load(ctx context.Context, event string) ([]model.VerificationRecord, error) {
	source := l.baseURL + "/" + url.PathEscape(event) + "/" + DataFileName

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.FetchError{
			Event:  event,
			Source: source,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return DecodeRecords(event, source, resp.Body)
}
