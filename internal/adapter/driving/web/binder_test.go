package web

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbitosc/verify25/internal/adapter/driving/web/viewmodel"
	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/domain/model"
)

type stubEncoder struct {
	content string
	err     error
}

func (s *stubEncoder) EncodePNG(content string) ([]byte, error) {
	s.content = content
	if s.err != nil {
		return nil, s.err
	}
	return []byte("png"), nil
}

var positionsEvent = model.Event{
	Name:              "MazeriftM",
	Title:             "Mazerift",
	Layout:            model.LayoutPositions,
	VerificationEvent: "MazeriftM",
}

func TestNewPageView_Default(t *testing.T) {
	view := NewPageView(positionsEvent)

	assert.False(t, view.Verified())
	assert.False(t, view.Hidden(viewmodel.GeneralHeaderID))
	assert.True(t, view.Hidden(viewmodel.CertHeaderID))
	require.Len(t, view.Blocks, 3)
	for _, b := range view.Blocks {
		assert.True(t, view.Hidden(b.CertificateID), b.CertificateID)
	}
}

func TestBind_PositionFirst(t *testing.T) {
	enc := &stubEncoder{}
	view := NewPageView(positionsEvent)
	tmpl, err := model.SelectTemplate(model.PositionFirst)
	require.NoError(t, err)

	err = NewPresentationBinder(enc).Bind(view, &application.Verification{
		Event:    positionsEvent,
		Record:   model.VerificationRecord{Code: "A1", Holder: "Jane Doe", Position: model.PositionFirst},
		Template: tmpl,
		URL:      "https://cbitosc.github.io/verify25/MazeriftM/?id=A1",
	})

	require.NoError(t, err)
	assert.True(t, view.Verified())
	assert.True(t, view.Hidden(viewmodel.GeneralHeaderID))
	assert.Equal(t, "Jane Doe", view.Text(viewmodel.HeaderNameElementID))
	assert.Equal(t, "Jane Doe", view.Text("name-element-1"))
	assert.False(t, view.Hidden("certificate-1"))
	assert.True(t, view.Hidden("certificate-2"))
	assert.True(t, view.Hidden("certificate-3"))
	assert.Equal(t, "data:image/png;base64,cG5n", view.QRSource("qr-container-1"))
	assert.Equal(t, "https://cbitosc.github.io/verify25/MazeriftM/?id=A1", enc.content)
}

func TestBind_ZeroTemplateLeavesPageUnverified(t *testing.T) {
	enc := &stubEncoder{}
	view := NewPageView(positionsEvent)

	err := NewPresentationBinder(enc).Bind(view, &application.Verification{
		Event:  positionsEvent,
		Record: model.VerificationRecord{Code: "A1", Holder: "Jane Doe", Position: "fourth"},
		URL:    "https://cbitosc.github.io/verify25/MazeriftM/?id=A1",
	})

	require.NoError(t, err)
	assert.False(t, view.Verified())
	assert.False(t, view.Hidden(viewmodel.GeneralHeaderID))
	assert.True(t, view.Hidden(viewmodel.CertHeaderID))
	assert.Empty(t, view.Text(viewmodel.HeaderNameElementID))
	for _, b := range view.Blocks {
		assert.True(t, view.Hidden(b.CertificateID))
		assert.Empty(t, view.Text(b.NameElementID))
		assert.Empty(t, view.QRSource(b.QRContainerID))
	}
	assert.Empty(t, enc.content, "no QR is rendered without a container")
}

func TestBind_HolderKeptLiterally(t *testing.T) {
	view := NewPageView(model.Event{Name: "hfestP", Layout: model.LayoutSingle})

	err := NewPresentationBinder(&stubEncoder{}).Bind(view, &application.Verification{
		Record:   model.VerificationRecord{Code: "A1", Holder: "A <B> & C"},
		Template: model.Templates(model.LayoutSingle)[0],
		URL:      "http://localhost/hfestP/?id=A1",
	})

	require.NoError(t, err)
	assert.Equal(t, "A <B> & C", view.Text("name-element"))
	assert.Equal(t, "A <B> & C", view.Text(viewmodel.HeaderNameElementID))
}

func TestBind_QRFailureKeepsName(t *testing.T) {
	view := NewPageView(model.Event{Name: "hfestP", Layout: model.LayoutSingle})

	err := NewPresentationBinder(&stubEncoder{err: errors.New("too long")}).Bind(view, &application.Verification{
		Record:   model.VerificationRecord{Code: "A1", Holder: "Jane"},
		Template: model.Templates(model.LayoutSingle)[0],
		URL:      "http://localhost/hfestP/?id=A1",
	})

	assert.ErrorContains(t, err, "render qr for A1")
	assert.Equal(t, "Jane", view.Text("name-element"))
	assert.Empty(t, view.QRSource("qr-container"))
}
