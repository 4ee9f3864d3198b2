// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package pixel

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/emberon-format/emberon/lib/container"
)

func TestNewBufferValidation(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		pixLen  int
		wantErr bool
	}{
		{"exact", 8, 8, 256, false},
		{"short", 8, 8, 255, true},
		{"long", 8, 8, 257, true},
		{"zero width", 0, 8, 0, true},
		{"negative height", 8, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuffer(tt.width, tt.height, make([]byte, tt.pixLen))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBuffer(%d, %d, %d bytes) error = %v, wantErr %v",
					tt.width, tt.height, tt.pixLen, err, tt.wantErr)
			}
		})
	}
}

func TestStreamLengthAndOrder(t *testing.T) {
	// 16x16 pixels, 1024 channel bytes, each byte identifying its
	// position so raster order is observable.
	pix := make([]byte, 16*16*4)
	for i := range pix {
		pix[i] = byte(i)
	}
	buffer, err := NewBuffer(16, 16, pix)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	stream, err := buffer.Stream()
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(stream) != 16*16*4 {
		t.Fatalf("stream length = %d, want %d", len(stream), 16*16*4)
	}
	if !bytes.Equal(stream, pix) {
		t.Error("stream should be the channel bytes in raster order, unmodified")
	}
}

func TestStreamTooSmallForHeader(t *testing.T) {
	// 8x7 pixels = 224 channel bytes, below the 256-byte header.
	buffer, err := NewBuffer(8, 7, make([]byte, 8*7*4))
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	_, err = buffer.Stream()
	var truncatedErr *container.TruncatedError
	if !errors.As(err, &truncatedErr) {
		t.Fatalf("got %v, want TruncatedError", err)
	}
	if truncatedErr.Need != container.HeaderSize || truncatedErr.Have != 224 {
		t.Errorf("Need/Have = %d/%d, want %d/224", truncatedErr.Need, truncatedErr.Have, container.HeaderSize)
	}
}

func TestFromImageNRGBA(t *testing.T) {
	// PNG decoding hands back *image.NRGBA for 8-bit RGBA images; the
	// embedded bytes must survive exactly, alpha included.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}

	buffer := FromImage(img)
	if buffer.Width != 16 || buffer.Height != 4 {
		t.Fatalf("dimensions = %dx%d, want 16x4", buffer.Width, buffer.Height)
	}
	if !bytes.Equal(buffer.Pix, img.Pix) {
		t.Error("NRGBA channel bytes should be copied verbatim")
	}
}

func TestFromImageRespectsStride(t *testing.T) {
	// A sub-image has a stride wider than its row width; the copy must
	// follow the stride, not assume tightly packed rows.
	base := image.NewNRGBA(image.Rect(0, 0, 32, 8))
	for i := range base.Pix {
		base.Pix[i] = byte(i)
	}
	sub := base.SubImage(image.Rect(0, 0, 16, 8)).(*image.NRGBA)

	buffer := FromImage(sub)
	if buffer.Width != 16 || buffer.Height != 8 {
		t.Fatalf("dimensions = %dx%d, want 16x8", buffer.Width, buffer.Height)
	}

	for y := 0; y < 8; y++ {
		want := base.Pix[y*base.Stride : y*base.Stride+16*4]
		got := buffer.Pix[y*16*4 : (y+1)*16*4]
		if !bytes.Equal(got, want) {
			t.Fatalf("row %d differs from source", y)
		}
	}
}

func TestFromImageConvertsOtherTypes(t *testing.T) {
	// Non-NRGBA images go through the slow conversion path.
	img := image.NewGray(image.Rect(0, 0, 16, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	buffer := FromImage(img)
	if len(buffer.Pix) != 16*4*4 {
		t.Fatalf("pix length = %d, want %d", len(buffer.Pix), 16*4*4)
	}
	// Gray converts to R=G=B=gray, A=255.
	if buffer.Pix[0] != 0 || buffer.Pix[1] != 0 || buffer.Pix[2] != 0 || buffer.Pix[3] != 255 {
		t.Errorf("first pixel = %v, want gray 0 with opaque alpha", buffer.Pix[:4])
	}
}
