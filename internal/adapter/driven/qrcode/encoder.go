// Package qrcode implements the QREncoder port with skip2/go-qrcode.
package qrcode

import (
	"errors"
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Rendering parameters of printed certificates.
const (
	DefaultSize    = 384
	DefaultVersion = 8
)

// Compile-time interface satisfaction check.
var _ driven.QREncoder = (*Encoder)(nil)

// Encoder renders black-on-white PNG QR codes at the highest recovery level.
type Encoder struct {
	size    int
	version int
}

// NewEncoder creates an Encoder producing size×size images. Non-positive
// size falls back to DefaultSize.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{size: size, version: DefaultVersion}
}

// EncodePNG encodes content. Version 8 is used when content fits it, so
// codes stay scannable at certificate print size; longer content, such as
// URLs with a LAN origin, falls back to the smallest version that fits.
func (e *Encoder) EncodePNG(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}

	q, err := qrcode.NewWithForcedVersion(content, e.version, qrcode.Highest)
	if err != nil {
		q, err = qrcode.New(content, qrcode.Highest)
		if err != nil {
			return nil, fmt.Errorf("encode qr: %w", err)
		}
	}

	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White

	png, err := q.PNG(e.size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}
