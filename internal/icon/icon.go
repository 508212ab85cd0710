// Package icon loads the tray icon image.
package icon

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"os"

	"codeberg.org/mutker/powertray/internal/errors"
)

// Image is a decoded icon. RGBA holds non-premultiplied pixels, row by
// row, four bytes per pixel.
type Image struct {
	Width  int
	Height int
	RGBA   []byte

	encoded []byte
}

// Load reads and decodes the PNG at path
func Load(path string) (*Image, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrReadFailed, err)
	}

	return Decode(data)
}

// Decode decodes PNG data
func Decode(data []byte) (*Image, error) {
	errFactory := errors.New()

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errFactory.Wrap(ErrDecodeFailed, err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, errFactory.New(ErrEmptyImage)
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return &Image{
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		RGBA:    rgba.Pix,
		encoded: data,
	}, nil
}

// PNG returns the original encoded image
func (i *Image) PNG() []byte {
	return i.encoded
}

// TrayBytes returns the image in the encoding the platform tray expects
func (i *Image) TrayBytes() []byte {
	return trayBytes(i)
}
