package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Verification is the result of a successful lookup: the matched record,
// the certificate block it binds to and the URL its QR code encodes.
// Template is zero when the record's position is unrecognized.
type Verification struct {
	Event    model.Event
	Record   model.VerificationRecord
	Template model.CertificateTemplate
	URL      string
}

// VerificationService runs one lookup per page view: load the event dataset,
// match the code, resolve the environment and build the verification URL.
// It depends only on port interfaces.
type VerificationService struct {
	loader   driven.DatasetLoader
	resolver *EnvironmentResolver
	recorder driven.LookupRecorder
	logger   *slog.Logger
}

// NewVerificationService creates a VerificationService. recorder may be nil.
func NewVerificationService(
	loader driven.DatasetLoader,
	resolver *EnvironmentResolver,
	recorder driven.LookupRecorder,
	logger *slog.Logger,
) *VerificationService {
	return &VerificationService{
		loader:   loader,
		resolver: resolver,
		recorder: recorder,
		logger:   logger,
	}
}

// Verify looks up code in the dataset of event. It returns model.ErrNoMatch
// when no record qualifies, and the loader's *model.FetchError or
// *model.ParseError when the dataset is unavailable. A record with an
// unrecognized position still verifies, with a zero Template.
func (s *VerificationService) Verify(ctx context.Context, event model.Event, loc model.PageLocation, code string) (*Verification, error) {
	if code == "" {
		s.record(event.Name, model.OutcomeNoMatch)
		return nil, model.ErrNoMatch
	}

	records, err := s.loader.Load(ctx, event.Name)
	if err != nil {
		s.record(event.Name, loadOutcome(err))
		return nil, err
	}

	record, ok := MatchRecord(records, code)
	if !ok {
		s.record(event.Name, model.OutcomeNoMatch)
		return nil, model.ErrNoMatch
	}

	eventName := event.VerificationEvent
	if eventName == "" {
		eventName = s.resolver.ResolveEventName(loc.Path)
	}
	url := BuildVerificationURL(s.resolver.ResolveBaseURL(loc), eventName, record.Code)

	tmpl, err := model.TemplateFor(event.Layout, record)
	if err != nil {
		s.logger.Warn("record has no certificate block",
			"event", event.Name,
			"code", record.Code,
			"position", record.Position,
			"error", err,
		)
		s.record(event.Name, model.OutcomeUnrecognizedPosition)
	} else {
		s.record(event.Name, model.OutcomeVerified)
	}

	return &Verification{
		Event:    event,
		Record:   record,
		Template: tmpl,
		URL:      url,
	}, nil
}

func (s *VerificationService) record(event string, outcome model.LookupOutcome) {
	if s.recorder != nil {
		s.recorder.RecordLookup(event, outcome)
	}
}

func loadOutcome(err error) model.LookupOutcome {
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		return model.OutcomeParseError
	}
	return model.OutcomeFetchError
}
