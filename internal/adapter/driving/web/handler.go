// Package web implements the HTML driving adapter: event pages rendered with
// templ components, their QR images and the event's static assets.
package web

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	httphandler "github.com/cbitosc/verify25/internal/adapter/driving/http"
	"github.com/cbitosc/verify25/internal/adapter/driving/web/templates"
	"github.com/cbitosc/verify25/internal/adapter/driving/web/templates/pages"
	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Handler is the web driving adapter that serves event pages via templ components.
type Handler struct {
	catalog   driven.EventCatalog
	verifySvc *application.VerificationService
	binder    *PresentationBinder
	qr        driven.QREncoder
	assets    fs.FS
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. assets holds
// the event directories (images, fonts); it may be nil.
func NewHandler(
	catalog driven.EventCatalog,
	verifySvc *application.VerificationService,
	qr driven.QREncoder,
	assets fs.FS,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		verifySvc: verifySvc,
		binder:    NewPresentationBinder(qr),
		qr:        qr,
		assets:    assets,
		logger:    logger,
	}
}

// Index renders the list of event pages.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	layout := templates.Layout("Certificate verification", pages.IndexPage(events))
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render index", "error", err)
	}
}

// EventRedirect sends /{event} to /{event}/ so relative asset paths resolve.
func (h *Handler) EventRedirect(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/"+r.PathValue("event")+"/")
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// EventFile dispatches /{event}/{file...}: the page itself, its QR image or
// a static asset of the event directory. A differently cased event segment
// is redirected to the event's own name, which verification URLs embed.
func (h *Handler) EventFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("event")
	event, err := h.catalog.Get(r.Context(), name)
	if err != nil {
		if !errors.Is(err, model.ErrEventNotFound) {
			h.logger.Error("failed to resolve event", "event", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}

	file := r.PathValue("file")
	if event.Name != name {
		redirect(w, r, "/"+event.Name+"/"+file)
		return
	}

	switch file {
	case "", "index.html":
		h.eventPage(w, r, event)
	case "qr.png":
		h.qrImage(w, r, event)
	default:
		h.asset(w, r, event, file)
	}
}

// eventPage renders the page of event. Lookup failures are logged and leave
// the page in its unverified state; the response is 200 either way.
func (h *Handler) eventPage(w http.ResponseWriter, r *http.Request, event model.Event) {
	view := NewPageView(event)

	if v := h.verify(r, event); v != nil {
		switch err := h.binder.Bind(view, v); {
		case err != nil:
			h.logger.Error("failed to bind certificate", "event", event.Name, "code", v.Record.Code, "error", err)
		case view.Verified():
			h.logger.Info("generated qr", "event", event.Name, "url", v.URL)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	layout := templates.Layout(event.Title, pages.EventPage(view))
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render event page", "event", event.Name, "error", err)
	}
}

// qrImage serves the QR code of a matched record as a PNG. Records without
// a certificate block on the page get none.
func (h *Handler) qrImage(w http.ResponseWriter, r *http.Request, event model.Event) {
	v := h.verify(r, event)
	if v == nil || v.Template.IsZero() {
		http.NotFound(w, r)
		return
	}

	png, err := h.qr.EncodePNG(v.URL)
	if err != nil {
		h.logger.Error("failed to render qr", "event", event.Name, "code", v.Record.Code, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *Handler) asset(w http.ResponseWriter, r *http.Request, event model.Event, file string) {
	if h.assets == nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.assets, path.Join(event.Name, file))
}

// verify runs the lookup for ?id= and logs failures. It returns nil when the
// page must stay unverified.
func (h *Handler) verify(r *http.Request, event model.Event) *application.Verification {
	code := r.URL.Query().Get("id")
	if code == "" {
		return nil
	}

	v, err := h.verifySvc.Verify(r.Context(), event, httphandler.LocationFromRequest(r), code)
	if err != nil {
		if errors.Is(err, model.ErrNoMatch) {
			h.logger.Warn("no matching entry found for the provided code", "event", event.Name, "code", code)
		} else {
			h.logger.Error("error loading dataset", "event", event.Name, "error", err)
		}
		return nil
	}
	return v
}
