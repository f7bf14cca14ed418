package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbitosc/verify25/internal/domain/model"
)

// --- Mock implementations ---

type mockLoader struct {
	records []model.VerificationRecord
	err     error
	calls   int
	event   string
}

func (m *mockLoader) Load(_ context.Context, event string) ([]model.VerificationRecord, error) {
	m.calls++
	m.event = event
	return m.records, m.err
}

type mockRecorder struct {
	outcomes []model.LookupOutcome
}

func (m *mockRecorder) RecordLookup(_ string, outcome model.LookupOutcome) {
	m.outcomes = append(m.outcomes, outcome)
}

func newTestService(loader *mockLoader, recorder *mockRecorder) *VerificationService {
	return NewVerificationService(
		loader,
		NewEnvironmentResolver("", ""),
		recorder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

var productionLoc = model.PageLocation{Scheme: "https", Host: "cbitosc.github.io", Path: "/verify25/hfestA/"}

// --- MatchRecord tests ---

func TestMatchRecord_AbsentCodeNeverMatches(t *testing.T) {
	records := []model.VerificationRecord{
		{Code: "A1", Holder: "Jane Doe"},
		{Code: "B2", Holder: "John Roe"},
	}

	for _, code := range []string{"", "C3", "a1", "A1 ", " A1", "A"} {
		_, ok := MatchRecord(records, code)
		assert.False(t, ok, "code %q should not match", code)
	}

	_, ok := MatchRecord(nil, "A1")
	assert.False(t, ok)
}

func TestMatchRecord_UniqueCodeAnyPosition(t *testing.T) {
	target := model.VerificationRecord{Code: "XJ92", Holder: "Target"}

	for i := 0; i < 5; i++ {
		records := make([]model.VerificationRecord, 0, 5)
		for j := 0; j < 5; j++ {
			if j == i {
				records = append(records, target)
				continue
			}
			records = append(records, model.VerificationRecord{Code: fmt.Sprintf("C%d", j), Holder: "Other"})
		}

		got, ok := MatchRecord(records, "XJ92")
		require.True(t, ok, "index %d", i)
		assert.Equal(t, target, got)
	}
}

func TestMatchRecord_DuplicateCodesFirstWins(t *testing.T) {
	records := []model.VerificationRecord{
		{Code: "A1", Holder: "First"},
		{Code: "A1", Holder: "Second"},
	}

	got, ok := MatchRecord(records, "A1")
	require.True(t, ok)
	assert.Equal(t, "First", got.Holder)
}

// --- VerificationService tests ---

func TestVerify_PositionsScenario(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{
		{Code: "A1", Holder: "Jane Doe", Position: model.PositionFirst},
	}}
	recorder := &mockRecorder{}
	svc := newTestService(loader, recorder)
	event := model.Event{Name: "MazeriftM", Layout: model.LayoutPositions, VerificationEvent: "MazeriftM"}

	v, err := svc.Verify(context.Background(), event, productionLoc, "A1")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", v.Record.Holder)
	assert.Equal(t, model.CertificateTemplate{
		NameElementID: "name-element-1",
		QRContainerID: "qr-container-1",
		CertificateID: "certificate-1",
	}, v.Template)
	assert.Equal(t, "https://cbitosc.github.io/verify25/MazeriftM/?id=A1", v.URL)
	assert.Equal(t, "MazeriftM", loader.event)
	assert.Equal(t, []model.LookupOutcome{model.OutcomeVerified}, recorder.outcomes)
}

func TestVerify_EventNameFromPath(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{{Code: "XJ92", Holder: "Jane"}}}
	svc := newTestService(loader, &mockRecorder{})
	event := model.Event{Name: "hfestA", Layout: model.LayoutSingle}

	v, err := svc.Verify(context.Background(), event, productionLoc, "XJ92")

	require.NoError(t, err)
	assert.Equal(t, "https://cbitosc.github.io/verify25/hfestA/?id=XJ92", v.URL)
	assert.Equal(t, "certificate", v.Template.CertificateID)
}

func TestVerify_LocalHostUsesPageOrigin(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{{Code: "XJ92", Holder: "Jane"}}}
	svc := newTestService(loader, &mockRecorder{})
	loc := model.PageLocation{Scheme: "http", Host: "localhost:8000", Path: "/hfestW/"}

	v, err := svc.Verify(context.Background(), model.Event{Name: "hfestW"}, loc, "XJ92")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/hfestW/?id=XJ92", v.URL)
}

func TestVerify_EmptyCodeSkipsLoad(t *testing.T) {
	loader := &mockLoader{}
	recorder := &mockRecorder{}
	svc := newTestService(loader, recorder)

	v, err := svc.Verify(context.Background(), model.Event{Name: "hfestP"}, productionLoc, "")

	assert.Nil(t, v)
	assert.ErrorIs(t, err, model.ErrNoMatch)
	assert.Equal(t, 0, loader.calls)
	assert.Equal(t, []model.LookupOutcome{model.OutcomeNoMatch}, recorder.outcomes)
}

func TestVerify_NoMatch(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{{Code: "A1", Holder: "Jane"}}}
	recorder := &mockRecorder{}
	svc := newTestService(loader, recorder)

	v, err := svc.Verify(context.Background(), model.Event{Name: "hfestP"}, productionLoc, "Z9")

	assert.Nil(t, v)
	assert.ErrorIs(t, err, model.ErrNoMatch)
	assert.Equal(t, []model.LookupOutcome{model.OutcomeNoMatch}, recorder.outcomes)
}

func TestVerify_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome model.LookupOutcome
	}{
		{
			name:    "fetch error",
			err:     &model.FetchError{Event: "hfestP", Source: "test", Err: errors.New("unreachable")},
			outcome: model.OutcomeFetchError,
		},
		{
			name:    "parse error",
			err:     &model.ParseError{Event: "hfestP", Source: "test", Err: errors.New("bad json")},
			outcome: model.OutcomeParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &mockRecorder{}
			svc := newTestService(&mockLoader{err: tt.err}, recorder)

			v, err := svc.Verify(context.Background(), model.Event{Name: "hfestP"}, productionLoc, "A1")

			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, []model.LookupOutcome{tt.outcome}, recorder.outcomes)
		})
	}
}

func TestVerify_UnrecognizedPositionIsSoft(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{
		{Code: "A1", Holder: "Jane Doe", Position: "fourth"},
	}}
	recorder := &mockRecorder{}
	svc := newTestService(loader, recorder)

	v, err := svc.Verify(context.Background(), model.Event{Name: "MazeriftM", Layout: model.LayoutPositions}, productionLoc, "A1")

	require.NoError(t, err)
	assert.True(t, v.Template.IsZero())
	assert.Equal(t, "Jane Doe", v.Record.Holder)
	assert.Equal(t, []model.LookupOutcome{model.OutcomeUnrecognizedPosition}, recorder.outcomes)
}

func TestVerify_NilRecorder(t *testing.T) {
	loader := &mockLoader{records: []model.VerificationRecord{{Code: "A1", Holder: "Jane"}}}
	svc := NewVerificationService(loader, NewEnvironmentResolver("", ""), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Verify(context.Background(), model.Event{Name: "hfestP"}, productionLoc, "A1")
	require.NoError(t, err)
}
