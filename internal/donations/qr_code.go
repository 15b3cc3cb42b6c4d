package donations

import (
	qrcode "github.com/skip2/go-qrcode"
)

// QRCode renders donation links as PNG QR codes.
type QRCode struct {
	size int
}

// NewQRCode builds the generator; size <= 0 selects 256px.
func NewQRCode(size int) *QRCode {
	if size <= 0 {
		size = 256
	}
	return &QRCode{size: size}
}

func (q *QRCode) Render(link string) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, q.size)
}
