package driven

import (
	"context"

	"github.com/cbitosc/verify25/internal/domain/model"
)

// EventCatalog defines the driven port for resolving event pages.
// Get matches names case-insensitively and returns model.ErrEventNotFound for
// unknown events.
type EventCatalog interface {
	Get(ctx context.Context, name string) (model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}
