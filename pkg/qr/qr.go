// Package qr renders transport-form strings as QR images.
package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// TransportBudget is the QR capacity budget a transport string should stay
// under to remain scannable at version 40.
const TransportBudget = 7089

// PNG renders the data as a PNG image of the given pixel size.
func PNG(data string, size int) ([]byte, error) {
	if size == 0 {
		size = 256
	}

	code, err := qrcode.New(data, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI renders the data as an inline image URI for direct embedding.
func DataURI(data string, size int) (string, error) {
	img, err := PNG(data, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}
