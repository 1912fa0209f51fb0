package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

// EncodePng encodes an image to PNG bytes.
func EncodePng(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePngBase64 encodes an image to a base64 PNG string, suitable for
// embedding in JSON responses or data URLs.
func EncodePngBase64(img image.Image) (string, error) {
	data, err := EncodePng(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
