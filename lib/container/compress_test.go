// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz"
)

// zlibCompress deflates data the way a reference encoder would.
func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("zlib compress: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

// lzmaCompress produces an xz-container LZMA stream, the framing
// liblzma-based encoders emit.
func lzmaCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("xz compress: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompressNonePassthrough(t *testing.T) {
	data := []byte("uncompressed payloads pass through unchanged")

	result, err := Decompress(MethodNone, data, len(data))
	if err != nil {
		t.Fatalf("Decompress(none) failed: %v", err)
	}

	// Passthrough means the same backing slice, not a copy.
	if &result[0] != &data[0] {
		t.Error("MethodNone should return the payload slice, not a copy")
	}
}

func TestDecompressNoneSizeMismatch(t *testing.T) {
	data := []byte("five!")

	_, err := Decompress(MethodNone, data, 4)
	var sizeErr *SizeMismatchError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("got %v, want SizeMismatchError", err)
	}
	if sizeErr.Declared != 4 || sizeErr.Actual != 5 {
		t.Errorf("Declared/Actual = %d/%d, want 4/5", sizeErr.Declared, sizeErr.Actual)
	}
}

func TestDecompressZlibRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("the quick brown fox "), 512)
	compressed := zlibCompress(t, original)

	result, err := Decompress(MethodZlib, compressed, len(original))
	if err != nil {
		t.Fatalf("Decompress(zlib) failed: %v", err)
	}
	if !bytes.Equal(result, original) {
		t.Error("zlib round trip did not reproduce original bytes")
	}
}

func TestDecompressLZMARoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("lzma round trip data "), 512)
	compressed := lzmaCompress(t, original)

	result, err := Decompress(MethodLZMA, compressed, len(original))
	if err != nil {
		t.Fatalf("Decompress(lzma) failed: %v", err)
	}
	if !bytes.Equal(result, original) {
		t.Error("lzma round trip did not reproduce original bytes")
	}
}

func TestDecompressCorruptStreams(t *testing.T) {
	// Corrupt payloads must surface as DecompressionError naming the
	// method, not as the codec's own error type or a panic.
	tests := []struct {
		method  Method
		payload []byte
	}{
		{MethodZlib, []byte{0xff, 0xff, 0xde, 0xad, 0xbe, 0xef}},
		{MethodLZMA, []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			_, err := Decompress(tt.method, tt.payload, 100)
			var decompErr *DecompressionError
			if !errors.As(err, &decompErr) {
				t.Fatalf("got %v, want DecompressionError", err)
			}
			if decompErr.Method != tt.method {
				t.Errorf("Method = %v, want %v", decompErr.Method, tt.method)
			}
			if !strings.Contains(err.Error(), tt.method.String()) {
				t.Errorf("error %q should name the method", err.Error())
			}
			if decompErr.Unwrap() == nil {
				t.Error("DecompressionError should preserve the codec error")
			}
		})
	}
}

func TestDecompressTruncatedZlibStream(t *testing.T) {
	original := bytes.Repeat([]byte("abcdefgh"), 256)
	compressed := zlibCompress(t, original)

	_, err := Decompress(MethodZlib, compressed[:len(compressed)/2], len(original))
	var decompErr *DecompressionError
	if !errors.As(err, &decompErr) {
		t.Fatalf("got %v, want DecompressionError", err)
	}
}

func TestDecompressZlibSizeMismatch(t *testing.T) {
	// The codec succeeds but the header lied about the original size.
	original := []byte("hello")
	compressed := zlibCompress(t, original)

	_, err := Decompress(MethodZlib, compressed, 4)
	var sizeErr *SizeMismatchError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("got %v, want SizeMismatchError", err)
	}
	if sizeErr.Method != MethodZlib {
		t.Errorf("Method = %v, want %v", sizeErr.Method, MethodZlib)
	}
}

func TestDecompressZstdUnsupported(t *testing.T) {
	_, err := Decompress(MethodZstd, []byte("anything"), 8)

	var methodErr *UnsupportedMethodError
	if !errors.As(err, &methodErr) {
		t.Fatalf("got %v, want UnsupportedMethodError", err)
	}
	if methodErr.Method != MethodZstd {
		t.Errorf("Method = %v, want %v", methodErr.Method, MethodZstd)
	}
	// Distinct from an unknown method byte: the format is understood,
	// the codec is just not built in.
	if !methodErr.Recognized {
		t.Error("zstd should be reported as recognized but unsupported")
	}
}

func TestDecompressUnknownMethod(t *testing.T) {
	_, err := Decompress(Method(9), []byte("anything"), 8)

	var methodErr *UnsupportedMethodError
	if !errors.As(err, &methodErr) {
		t.Fatalf("got %v, want UnsupportedMethodError", err)
	}
	if methodErr.Recognized {
		t.Error("method 9 should not be a recognized enumerant")
	}
}

func TestDecompressEmptyPayload(t *testing.T) {
	result, err := Decompress(MethodNone, nil, 0)
	if err != nil {
		t.Fatalf("Decompress of empty payload failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("got %d bytes, want 0", len(result))
	}
}
