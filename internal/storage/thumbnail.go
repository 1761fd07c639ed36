package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const thumbWidth = 320

// IsImage indica si el content type declarado admite miniatura.
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

// Thumbnail decodifica la imagen, la escala a 320px de ancho manteniendo
// proporción y la reencodea como webp.
func Thumbnail(data []byte, contentType string) ([]byte, error) {
	var (
		src image.Image
		err error
	)

	switch contentType {
	case "image/jpeg":
		src, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		src, err = png.Decode(bytes.NewReader(data))
	case "image/webp":
		src, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("storage: tipo sin miniatura: %s", contentType)
	}
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("storage: imagen vacía")
	}

	width := thumbWidth
	if bounds.Dx() < width {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height <= 0 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	if err := webp.Encode(&out, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
