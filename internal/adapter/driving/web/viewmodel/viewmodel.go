// Package viewmodel holds the element state that event page templates render.
package viewmodel

import "github.com/cbitosc/verify25/internal/domain/model"

// Element identifiers shared by every event page.
const (
	GeneralHeaderID     = "general-header"
	CertHeaderID        = "cert-header"
	HeaderNameElementID = "header-name-element"
)

// PageView is the element state of one event page, keyed by element id.
// A fresh view is the unverified page: the general header shows and every
// certificate block is hidden.
type PageView struct {
	Event           model.Event
	DescriptionHTML string
	Blocks          []model.CertificateTemplate

	hidden map[string]bool
	text   map[string]string
	qr     map[string]string
}

// NewPageView creates the default view of event. descriptionHTML must
// already be sanitized.
func NewPageView(event model.Event, descriptionHTML string) *PageView {
	v := &PageView{
		Event:           event,
		DescriptionHTML: descriptionHTML,
		Blocks:          model.Templates(event.Layout),
		hidden:          map[string]bool{CertHeaderID: true},
		text:            make(map[string]string),
		qr:              make(map[string]string),
	}
	for _, b := range v.Blocks {
		v.hidden[b.CertificateID] = true
	}
	return v
}

// Hidden reports whether element id carries the hidden class.
func (v *PageView) Hidden(id string) bool { return v.hidden[id] }

// Text returns the text content bound to element id.
func (v *PageView) Text(id string) string { return v.text[id] }

// QRSource returns the image source bound to QR container id, if any.
func (v *PageView) QRSource(id string) string { return v.qr[id] }

// Verified reports whether a record has been bound to the page.
func (v *PageView) Verified() bool { return !v.hidden[CertHeaderID] }

// Show removes the hidden class from element id.
func (v *PageView) Show(id string) { delete(v.hidden, id) }

// Hide adds the hidden class to element id.
func (v *PageView) Hide(id string) { v.hidden[id] = true }

// SetText binds the text content of element id. The value is escaped when
// rendered.
func (v *PageView) SetText(id, text string) { v.text[id] = text }

// SetQRSource binds the image source of QR container id.
func (v *PageView) SetQRSource(id, src string) { v.qr[id] = src }
