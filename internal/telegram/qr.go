package telegram

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

var ErrEmptyQRPayload = errors.New("empty qr payload")

// RenderQR encodes payload as a PNG QR code. Payloads above the QR capacity
// for the low recovery level return an error.
func RenderQR(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyQRPayload
	}
	png, err := qrcode.Encode(payload, qrcode.Low, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
