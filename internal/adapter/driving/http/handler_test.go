package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httphandler "github.com/cbitosc/verify25/internal/adapter/driving/http"
	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockCatalog struct {
	events []model.Event
	err    error
}

func (m *mockCatalog) Get(_ context.Context, name string) (model.Event, error) {
	if m.err != nil {
		return model.Event{}, m.err
	}
	for _, e := range m.events {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return model.Event{}, fmt.Errorf("%w: %s", model.ErrEventNotFound, name)
}

func (m *mockCatalog) List(_ context.Context) ([]model.Event, error) {
	return m.events, m.err
}

type mockLoader struct {
	records map[string][]model.VerificationRecord
	err     error
}

func (m *mockLoader) Load(_ context.Context, event string) ([]model.VerificationRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[event], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, loader *mockLoader) http.Handler {
	t.Helper()

	catalog := &mockCatalog{events: []model.Event{
		{Name: "hfestA", Title: "hfestA", Layout: model.LayoutSingle},
		{Name: "MazeriftM", Title: "Mazerift", Layout: model.LayoutPositions, VerificationEvent: "MazeriftM"},
	}}
	svc := application.NewVerificationService(loader, application.NewEnvironmentResolver("", ""), nil, discardLogger())

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(catalog, svc, discardLogger()))
	return httphandler.ApplyMiddleware(mux, discardLogger(), false)
}

func defaultLoader() *mockLoader {
	return &mockLoader{records: map[string][]model.VerificationRecord{
		"hfestA":    {{Code: "XJ92", Holder: "Jane Doe"}},
		"MazeriftM": {{Code: "A1", Holder: "Jane Doe", Position: model.PositionFirst}},
	}}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListEvents(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var events []httphandler.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "/MazeriftM/", events[1].Path)
	assert.Equal(t, "positions", events[1].Layout)
}

func TestVerify_ProductionHost(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	req := httptest.NewRequest(http.MethodGet, "https://cbitosc.github.io/api/v1/verify/hfestA?id=XJ92", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Holder)
	assert.Equal(t, "certificate", resp.CertificateID)
	assert.Equal(t, "https://cbitosc.github.io/verify25/hfestA/?id=XJ92", resp.VerificationURL)
}

func TestVerify_LocalHostWithForwardedProto(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/hfestA?id=XJ92", nil)
	req.Host = "192.168.1.5:8000"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://192.168.1.5:8000/hfestA/?id=XJ92", resp.VerificationURL)
}

func TestVerify_PositionsEvent(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/MazeriftM?id=A1", nil)
	req.Host = "localhost:8000"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "first", resp.Position)
	assert.Equal(t, "certificate-1", resp.CertificateID)
	assert.True(t, strings.HasSuffix(resp.VerificationURL, "?id=A1"))
	assert.Equal(t, "http://localhost:8000/MazeriftM/?id=A1", resp.VerificationURL)
}

func TestVerify_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		loader *mockLoader
		want   int
	}{
		{"unknown event", "/api/v1/verify/nope?id=XJ92", defaultLoader(), http.StatusNotFound},
		{"no match", "/api/v1/verify/hfestA?id=nope", defaultLoader(), http.StatusNotFound},
		{"missing id", "/api/v1/verify/hfestA", defaultLoader(), http.StatusNotFound},
		{
			"fetch error",
			"/api/v1/verify/hfestA?id=XJ92",
			&mockLoader{err: &model.FetchError{Event: "hfestA", Source: "test", Err: errors.New("down")}},
			http.StatusBadGateway,
		},
		{
			"parse error",
			"/api/v1/verify/hfestA?id=XJ92",
			&mockLoader{err: &model.ParseError{Event: "hfestA", Source: "test", Err: errors.New("bad")}},
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.loader)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestApplyMiddleware_NoCache(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	httphandler.ApplyMiddleware(inner, discardLogger(), true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate, max-age=0", rec.Header().Get("Cache-Control"))
}

func TestApplyMiddleware_RecoversPanic(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	httphandler.ApplyMiddleware(inner, discardLogger(), false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestLocationFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost:8000/hfestP/?id=A1", nil)

	loc := httphandler.LocationFromRequest(req)

	assert.Equal(t, model.PageLocation{Scheme: "http", Host: "localhost:8000", Path: "/hfestP/"}, loc)
}

func TestApplyMiddleware_LogsLookupCode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := httphandler.ApplyMiddleware(inner, logger, false)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hfestP/?id=XJ92", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/verify.css", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "static requests log at debug level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "/hfestP/", entry["path"])
	assert.Equal(t, "XJ92", entry["code"])
	assert.EqualValues(t, http.StatusNoContent, entry["status"])
}

func TestVerify_CanonicalEventNameInURL(t *testing.T) {
	srv := newTestServer(t, defaultLoader())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/HFESTA?id=XJ92", nil)
	req.Host = "localhost:8000"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hfestA", resp.Event)
	assert.Equal(t, "http://localhost:8000/hfestA/?id=XJ92", resp.VerificationURL)
}
