package driven

import "github.com/cbitosc/verify25/internal/domain/model"

// LookupRecorder defines the driven port for counting lookup outcomes.
type LookupRecorder interface {
	RecordLookup(event string, outcome model.LookupOutcome)
}
