package driven

// QREncoder defines the driven port that renders text as a QR code PNG.
type QREncoder interface {
	EncodePNG(content string) ([]byte, error)
}
