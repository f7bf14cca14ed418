package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web routes on the provided mux.
// Event pages are served at /{event}/ with their QR image at /{event}/qr.png.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes. /static/ is more specific than /{event}/{file...}.
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /{event}", h.EventRedirect)
	mux.HandleFunc("GET /{event}/{file...}", h.EventFile)
}
