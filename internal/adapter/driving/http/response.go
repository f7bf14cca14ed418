package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// VerifyResponse is the JSON representation of a verified certificate.
type VerifyResponse struct {
	Event           string `json:"event"`
	Code            string `json:"code"`
	Holder          string `json:"holder"`
	Position        string `json:"position,omitempty"`
	CertificateID   string `json:"certificate_id,omitempty"`
	VerificationURL string `json:"verification_url"`
}

// EventResponse is the JSON representation of an event page.
type EventResponse struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Layout string `json:"layout"`
	Path   string `json:"path"`
}

func toVerifyResponse(v *application.Verification) VerifyResponse {
	return VerifyResponse{
		Event:           v.Event.Name,
		Code:            v.Record.Code,
		Holder:          v.Record.Holder,
		Position:        string(v.Record.Position),
		CertificateID:   v.Template.CertificateID,
		VerificationURL: v.URL,
	}
}

func toEventResponse(e model.Event) EventResponse {
	return EventResponse{
		Name:   e.Name,
		Title:  e.Title,
		Layout: string(e.Layout),
		Path:   "/" + e.Name + "/",
	}
}
