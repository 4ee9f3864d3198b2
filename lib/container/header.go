// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"
)

// Container format constants. All multi-byte integers are big-endian.
const (
	// HeaderSize is the fixed header length. The header occupies
	// exactly this many bytes regardless of filename length; space
	// after the digest is reserved padding.
	HeaderSize = 256

	magicSize  = 8
	digestSize = 32

	// MaxFilenameLength is the longest filename the fixed header can
	// carry: 256 bytes minus magic, length prefix, method byte, the
	// two size fields, and the digest.
	MaxFilenameLength = HeaderSize - magicSize - 2 - 1 - 8 - 8 - digestSize
)

// magic is the 8-byte container signature at offset 0.
var magic = [magicSize]byte{'E', 'M', 'B', 'E', 'R', 'O', 'N', '3'}

// Header is the parsed fixed-size Emberon header. Immutable after
// parsing: ParseHeader either returns a fully validated header or a
// typed error, never a partial result.
type Header struct {
	// Filename is the original name of the embedded file, as recorded
	// by the encoder. It is untrusted input — callers writing to disk
	// must sanitize it.
	Filename string

	// Method is the compression algorithm applied to the payload.
	Method Method

	// OriginalSize is the uncompressed payload length in bytes.
	OriginalSize uint64

	// CompressedSize is the payload length as stored in the stream.
	CompressedSize uint64

	// Digest is the SHA-256 digest of the uncompressed bytes.
	Digest [digestSize]byte
}

// ParseHeader reads and validates the fixed 256-byte header at the
// start of stream. The full stream is required (not just the first
// 256 bytes) so the declared compressed size can be bounds-checked
// against the bytes actually present.
//
// Validation order: stream length, magic marker (FormatError), method
// byte (UnsupportedMethodError for bytes outside the enumerated
// range), filename bounds (FormatError), declared payload size
// against the remaining stream (TruncatedError).
func ParseHeader(stream []byte) (*Header, error) {
	if len(stream) < HeaderSize {
		return nil, &TruncatedError{Region: "header", Need: HeaderSize, Have: int64(len(stream))}
	}

	if !bytes.Equal(stream[:magicSize], magic[:]) {
		return nil, &FormatError{
			Field:  "magic",
			Reason: "expected " + string(magic[:]) + ", found " + hex.EncodeToString(stream[:magicSize]),
		}
	}

	nameLength := int(binary.BigEndian.Uint16(stream[magicSize : magicSize+2]))
	if nameLength > MaxFilenameLength {
		return nil, &FormatError{
			Field:  "filename length",
			Reason: "declared length exceeds header capacity",
		}
	}

	pos := magicSize + 2
	name := stream[pos : pos+nameLength]
	if !utf8.Valid(name) {
		return nil, &FormatError{Field: "filename", Reason: "not valid UTF-8"}
	}
	pos += nameLength

	method := Method(stream[pos])
	if !method.recognized() {
		return nil, &UnsupportedMethodError{Method: method}
	}
	pos++

	header := &Header{
		Filename:       string(name),
		Method:         method,
		OriginalSize:   binary.BigEndian.Uint64(stream[pos : pos+8]),
		CompressedSize: binary.BigEndian.Uint64(stream[pos+8 : pos+16]),
	}
	copy(header.Digest[:], stream[pos+16:pos+16+digestSize])

	remaining := uint64(len(stream) - HeaderSize)
	if header.CompressedSize > remaining {
		return nil, &TruncatedError{
			Region: "payload",
			Need:   int64(header.CompressedSize),
			Have:   int64(remaining),
		}
	}

	return header, nil
}

// Payload returns the compressed payload slice of stream for this
// header: the CompressedSize bytes that follow the fixed header. The
// slice aliases stream; it is not a copy. ParseHeader has already
// bounds-checked the range.
func (h *Header) Payload(stream []byte) []byte {
	return stream[HeaderSize : HeaderSize+h.CompressedSize]
}

// FormatDigest returns the hex-encoded string representation of an
// integrity digest, the canonical format for log and inspect output.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}
