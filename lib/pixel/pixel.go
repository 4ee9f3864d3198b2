// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

// Package pixel turns a decoded RGBA pixel buffer into the flat byte
// stream an Emberon container is embedded in. PNG bitmap decoding
// itself is the caller's concern (stdlib image/png); this package only
// sees the decoded pixels.
package pixel

import (
	"fmt"
	"image"
	"image/color"

	"github.com/emberon-format/emberon/lib/container"
)

// channelsPerPixel is the number of data-carrying bytes per pixel.
// The alpha channel carries payload bytes like any other channel, not
// transparency.
const channelsPerPixel = 4

// Buffer is a decoded RGBA pixel buffer: Width*Height pixels, four
// channel bytes each, in row-major R,G,B,A order. Buffers are inputs
// to the decode pipeline and are never mutated.
type Buffer struct {
	Width  int
	Height int

	// Pix holds exactly Width*Height*4 channel bytes.
	Pix []byte
}

// NewBuffer wraps raw channel bytes in a Buffer, checking that the
// byte count matches the dimensions.
func NewBuffer(width, height int, pix []byte) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixel: invalid dimensions %dx%d", width, height)
	}
	expected := width * height * channelsPerPixel
	if len(pix) != expected {
		return nil, fmt.Errorf("pixel: %dx%d buffer needs %d bytes, got %d",
			width, height, expected, len(pix))
	}
	return &Buffer{Width: width, Height: height, Pix: pix}, nil
}

// FromImage adapts a decoded image into a Buffer.
//
// Emberon images decode as *image.NRGBA (8-bit RGBA PNGs are
// non-premultiplied), which preserves the embedded channel bytes
// exactly; that path copies rows respecting the source stride. Any
// other image type is converted pixel-by-pixel through the NRGBA
// color model — lossless for NRGBA-representable images, but a
// premultiplied source may not survive byte-exactly, which matters
// here because every channel byte is data.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pix := make([]byte, width*height*channelsPerPixel)

	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := width * channelsPerPixel
		for y := 0; y < height; y++ {
			srcRow := src.Pix[y*src.Stride : y*src.Stride+rowBytes]
			copy(pix[y*rowBytes:], srcRow)
		}
		return &Buffer{Width: width, Height: height, Pix: pix}
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix[offset] = c.R
			pix[offset+1] = c.G
			pix[offset+2] = c.B
			pix[offset+3] = c.A
			offset += channelsPerPixel
		}
	}
	return &Buffer{Width: width, Height: height, Pix: pix}
}

// Stream returns the raw byte stream embedded in the buffer: every
// channel byte in raster order, no channel dropped. The returned
// slice aliases Pix and must be treated as read-only.
//
// Returns TruncatedError when the image is too small to hold even the
// fixed container header.
func (b *Buffer) Stream() ([]byte, error) {
	if len(b.Pix) < container.HeaderSize {
		return nil, &container.TruncatedError{
			Region: "header",
			Need:   container.HeaderSize,
			Have:   int64(len(b.Pix)),
		}
	}
	return b.Pix, nil
}
