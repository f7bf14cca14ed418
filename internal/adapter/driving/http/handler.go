package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	catalog   driven.EventCatalog
	verifySvc *application.VerificationService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	catalog driven.EventCatalog,
	verifySvc *application.VerificationService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		verifySvc: verifySvc,
		logger:    logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/events", h.ListEvents)
	mux.HandleFunc("GET /api/v1/verify/{event}", h.Verify)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListEvents returns every event page the server knows.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify looks up ?id= in the dataset of {event}. The verification URL is
// built as if the event page itself had been requested on this host.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("event")
	code := r.URL.Query().Get("id")

	event, err := h.catalog.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("failed to resolve event", "event", name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	loc := LocationFromRequest(r)
	loc.Path = "/" + event.Name + "/"

	v, err := h.verifySvc.Verify(r.Context(), event, loc, code)
	if err != nil {
		status, message := verifyErrorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("verification failed", "event", event.Name, "code", code, "error", err)
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, toVerifyResponse(v))
}

func verifyErrorStatus(err error) (int, string) {
	var fetchErr *model.FetchError
	var parseErr *model.ParseError

	switch {
	case errors.Is(err, model.ErrNoMatch):
		return http.StatusNotFound, "no matching entry found"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "dataset unavailable"
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, "dataset malformed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LocationFromRequest reconstructs the address the client requested,
// honouring X-Forwarded-Proto from a TLS-terminating proxy.
func LocationFromRequest(r *http.Request) model.PageLocation {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	return model.PageLocation{
		Scheme: scheme,
		Host:   r.Host,
		Path:   r.URL.Path,
	}
}
