package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer encodes an arbitrary string as a scannable PNG. The encoding is
// not semantically significant; any decodable image satisfies the contract.
type Renderer struct {
	size int
}

func NewRenderer() *Renderer {
	return &Renderer{size: 256}
}

func (r *Renderer) RenderPNG(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, r.size)
}

// RenderDataURL returns the code as an inline image URL, ready for an <img> tag.
func (r *Renderer) RenderDataURL(data string) (string, error) {
	png, err := r.RenderPNG(data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
