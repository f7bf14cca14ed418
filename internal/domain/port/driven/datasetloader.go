package driven

import (
	"context"

	"github.com/cbitosc/verify25/internal/domain/model"
)

// DatasetLoader defines the driven port for retrieving an event's
// verification records. Implementations perform one read per call and do not
// retry. Unreachable datasets fail with *model.FetchError, malformed ones with
// *model.ParseError.
type DatasetLoader interface {
	Load(ctx context.Context, event string) ([]model.VerificationRecord, error)
}
