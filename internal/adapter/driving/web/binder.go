package web

import (
	"encoding/base64"
	"fmt"

	"github.com/cbitosc/verify25/internal/adapter/driving/web/viewmodel"
	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// NewPageView creates the unverified view of event with its description
// rendered from markdown.
func NewPageView(event model.Event) *viewmodel.PageView {
	return viewmodel.NewPageView(event, RenderMarkdown(event.Description))
}

// PresentationBinder binds a verification to page elements through the
// identifiers of its certificate template.
type PresentationBinder struct {
	qr driven.QREncoder
}

// NewPresentationBinder creates a PresentationBinder rendering QR codes with qr.
func NewPresentationBinder(qr driven.QREncoder) *PresentationBinder {
	return &PresentationBinder{qr: qr}
}

// Bind reveals the certificate header and the record's certificate block,
// filling its name slot and QR container. A verification with a zero
// template has no block to show, so the view keeps its unverified state.
// The view stays partially bound when QR rendering fails.
func (b *PresentationBinder) Bind(view *viewmodel.PageView, v *application.Verification) error {
	t := v.Template
	if t.IsZero() {
		return nil
	}

	holder := v.Record.Holder

	view.Hide(viewmodel.GeneralHeaderID)
	view.SetText(viewmodel.HeaderNameElementID, holder)
	view.Show(viewmodel.CertHeaderID)

	view.SetText(t.NameElementID, holder)
	view.Show(t.CertificateID)

	png, err := b.qr.EncodePNG(v.URL)
	if err != nil {
		return fmt.Errorf("render qr for %s: %w", v.Record.Code, err)
	}
	view.SetQRSource(t.QRContainerID, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png))

	return nil
}
