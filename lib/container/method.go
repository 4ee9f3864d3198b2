// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"fmt"
	"sync"
)

// Method identifies the compression algorithm used for the payload.
// Methods are stored in the container header (1 byte). These values
// are protocol constants — changing them breaks container format
// compatibility.
type Method uint8

const (
	// MethodNone indicates an uncompressed payload. Used for content
	// that is already compressed (media files, archives) where a
	// second pass adds CPU cost without reducing size.
	MethodNone Method = 0

	// MethodZlib indicates a zlib stream (RFC 1950 wrapper around
	// DEFLATE).
	MethodZlib Method = 1

	// MethodLZMA indicates an LZMA stream in an xz container, as
	// produced by liblzma-based encoders.
	MethodLZMA Method = 2

	// MethodZstd is reserved for Zstandard. The tag is part of the
	// format so existing headers carrying it parse cleanly, but no
	// decompressor is registered: decoding a zstd payload reports
	// UnsupportedMethodError rather than corrupt data.
	MethodZstd Method = 3
)

// String returns the human-readable name of a compression method.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodZlib:
		return "zlib"
	case MethodLZMA:
		return "lzma"
	case MethodZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseMethod parses a compression method from its string
// representation.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "none":
		return MethodNone, nil
	case "zlib":
		return MethodZlib, nil
	case "lzma":
		return MethodLZMA, nil
	case "zstd":
		return MethodZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression method: %q", name)
	}
}

// recognized reports whether m is one of the enumerated method tags,
// including reserved ones without a registered decompressor.
func (m Method) recognized() bool {
	return m <= MethodZstd
}

// A Decompressor reconstructs original bytes from a compressed
// payload. originalSize is the header's declared uncompressed size;
// implementations may use it to pre-size buffers but must not trust
// it — the dispatcher verifies the output length after the call.
type Decompressor interface {
	Decompress(payload []byte, originalSize int) ([]byte, error)
}

// decompressors maps method tags to their codecs. None, zlib and LZMA
// are registered at package initialization; zstd deliberately is not.
var (
	decompressorsMu sync.RWMutex
	decompressors   = map[Method]Decompressor{}
)

// RegisterDecompressor installs a codec for a method tag, replacing
// any existing registration. Adding a codec this way requires no
// change to header parsing or digest verification. Safe for
// concurrent use.
func RegisterDecompressor(method Method, d Decompressor) {
	decompressorsMu.Lock()
	defer decompressorsMu.Unlock()
	decompressors[method] = d
}

// Decompress routes payload to the codec registered for method and
// verifies the result against the declared original size.
//
// A method without a registered codec yields UnsupportedMethodError —
// for the reserved zstd tag this is the deliberate "format understood,
// codec unsupported" signal. Codec failures surface as
// DecompressionError naming the method. An output length that
// disagrees with originalSize yields SizeMismatchError.
func Decompress(method Method, payload []byte, originalSize int) ([]byte, error) {
	decompressorsMu.RLock()
	codec, ok := decompressors[method]
	decompressorsMu.RUnlock()
	if !ok {
		return nil, &UnsupportedMethodError{Method: method, Recognized: method.recognized()}
	}

	data, err := codec.Decompress(payload, originalSize)
	if err != nil {
		return nil, err
	}

	if len(data) != originalSize {
		return nil, &SizeMismatchError{
			Method:   method,
			Declared: int64(originalSize),
			Actual:   int64(len(data)),
		}
	}

	return data, nil
}
