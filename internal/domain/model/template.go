package model

// CertificateTemplate names the page elements a matched record is bound to.
type CertificateTemplate struct {
	NameElementID string
	QRContainerID string
	CertificateID string
}

// IsZero reports whether the template binds to no certificate block.
func (t CertificateTemplate) IsZero() bool {
	return t == CertificateTemplate{}
}

// singleTemplate is the only certificate block of single-layout pages.
var singleTemplate = CertificateTemplate{
	NameElementID: "name-element",
	QRContainerID: "qr-container",
	CertificateID: "certificate",
}

var positionTemplates = map[Position]CertificateTemplate{
	PositionFirst: {
		NameElementID: "name-element-1",
		QRContainerID: "qr-container-1",
		CertificateID: "certificate-1",
	},
	PositionSecond: {
		NameElementID: "name-element-2",
		QRContainerID: "qr-container-2",
		CertificateID: "certificate-2",
	},
	PositionThird: {
		NameElementID: "name-element-3",
		QRContainerID: "qr-container-3",
		CertificateID: "certificate-3",
	},
}

// Positions lists the podium positions in display order.
var Positions = []Position{PositionFirst, PositionSecond, PositionThird}

// SelectTemplate maps a podium position to its element identifiers.
// Unknown positions yield a zero template and ErrUnrecognizedPosition.
func SelectTemplate(position Position) (CertificateTemplate, error) {
	t, ok := positionTemplates[position]
	if !ok {
		return CertificateTemplate{}, ErrUnrecognizedPosition
	}
	return t, nil
}

// TemplateFor returns the certificate block a record binds to on a page of
// the given layout.
func TemplateFor(layout Layout, record VerificationRecord) (CertificateTemplate, error) {
	if layout == LayoutPositions {
		return SelectTemplate(record.Position)
	}
	return singleTemplate, nil
}

// Templates returns every certificate block a page of the given layout renders.
func Templates(layout Layout) []CertificateTemplate {
	if layout != LayoutPositions {
		return []CertificateTemplate{singleTemplate}
	}
	out := make([]CertificateTemplate, 0, len(Positions))
	for _, p := range Positions {
		out = append(out, positionTemplates[p])
	}
	return out
}
