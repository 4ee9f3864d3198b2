// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz"
)

func init() {
	RegisterDecompressor(MethodNone, noneDecompressor{})
	RegisterDecompressor(MethodZlib, zlibDecompressor{})
	RegisterDecompressor(MethodLZMA, lzmaDecompressor{})
}

// noneDecompressor passes the payload through unchanged (no copy).
// The dispatcher's length check catches a payload that disagrees with
// the declared original size.
type noneDecompressor struct{}

func (noneDecompressor) Decompress(payload []byte, originalSize int) ([]byte, error) {
	return payload, nil
}

// zlibDecompressor inflates an RFC 1950 zlib stream. The payload is
// streamed through the inflater into a single output buffer, so the
// compressed bytes are never duplicated.
type zlibDecompressor struct{}

func (zlibDecompressor) Decompress(payload []byte, originalSize int) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &DecompressionError{Method: MethodZlib, Err: err}
	}
	defer reader.Close()

	data, err := readAll(reader, originalSize)
	if err != nil {
		return nil, &DecompressionError{Method: MethodZlib, Err: err}
	}
	return data, nil
}

// lzmaDecompressor decodes an LZMA stream in an xz container, the
// framing liblzma-based encoders emit.
type lzmaDecompressor struct{}

func (lzmaDecompressor) Decompress(payload []byte, originalSize int) ([]byte, error) {
	reader, err := xz.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &DecompressionError{Method: MethodLZMA, Err: err}
	}

	data, err := readAll(reader, originalSize)
	if err != nil {
		return nil, &DecompressionError{Method: MethodLZMA, Err: err}
	}
	return data, nil
}

// maxGrowHint caps how much buffer capacity a header's declared size
// can pre-allocate. Larger outputs still decode; they just grow the
// buffer incrementally instead of in one shot.
const maxGrowHint = 64 * 1024 * 1024

// readAll drains r into a buffer pre-sized to sizeHint. The hint comes
// from an untrusted header, so it only seeds the capacity (bounded by
// maxGrowHint) — the read is never cut off at sizeHint, letting the
// dispatcher observe the codec's true output length.
func readAll(r io.Reader, sizeHint int) ([]byte, error) {
	var buf bytes.Buffer
	if sizeHint > 0 {
		buf.Grow(min(sizeHint, maxGrowHint))
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
