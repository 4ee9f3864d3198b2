// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"errors"
	"fmt"
)

// FormatError indicates that the byte stream is not a valid Emberon
// container: the magic marker is wrong, or a header field is
// internally inconsistent. Callers can use errors.As to extract the
// structured detail:
//
//	var formatErr *container.FormatError
//	if errors.As(err, &formatErr) { ... }
type FormatError struct {
	// Field names the offending header field (e.g., "magic",
	// "filename length").
	Field string

	// Reason describes the mismatch, including expected and actual
	// values where they are printable.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("emberon: invalid %s: %s", e.Field, e.Reason)
}

// TruncatedError indicates that the stream ends before the region a
// valid container requires: either the stream is shorter than the
// fixed header, or the header declares more payload bytes than the
// stream holds.
type TruncatedError struct {
	// Region is the part of the container that is cut short
	// ("header" or "payload").
	Region string

	// Need is the number of bytes the region requires.
	Need int64

	// Have is the number of bytes actually available.
	Have int64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("emberon: truncated %s: need %d bytes, have %d", e.Region, e.Need, e.Have)
}

// UnsupportedMethodError indicates a compression method this decoder
// cannot handle. Recognized distinguishes "format understood, codec
// not built in" (the reserved zstd tag) from a method byte outside the
// enumerated range entirely. Callers that want to offer an upgrade
// path should check Recognized.
type UnsupportedMethodError struct {
	// Method is the offending method byte from the header.
	Method Method

	// Recognized is true when the method is a known enumerant that
	// simply has no decompressor registered.
	Recognized bool
}

func (e *UnsupportedMethodError) Error() string {
	if e.Recognized {
		return fmt.Sprintf("emberon: compression method %s is not supported by this decoder", e.Method)
	}
	return fmt.Sprintf("emberon: unrecognized compression method byte %d", uint8(e.Method))
}

// DecompressionError indicates that the codec for the declared method
// rejected the payload as corrupt. The underlying codec error is
// preserved for errors.Is/As inspection via Unwrap.
type DecompressionError struct {
	// Method is the compression method whose codec failed.
	Method Method

	// Err is the error reported by the underlying codec.
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("emberon: %s decompression failed: %v", e.Method, e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

// SizeMismatchError indicates that decompression completed without a
// codec error but produced a byte count that disagrees with the
// header's declared original size. The output is discarded rather
// than truncated or padded.
type SizeMismatchError struct {
	// Method is the compression method that produced the output.
	Method Method

	// Declared is the original size from the header.
	Declared int64

	// Actual is the decompressed byte count.
	Actual int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("emberon: %s output is %d bytes, header declares %d",
		e.Method, e.Actual, e.Declared)
}

// IsTruncated reports whether err indicates a stream shorter than the
// container requires.
func IsTruncated(err error) bool {
	var truncatedErr *TruncatedError
	return errors.As(err, &truncatedErr)
}

// IsUnsupportedMethod reports whether err indicates a compression
// method this decoder cannot handle.
func IsUnsupportedMethod(err error) bool {
	var methodErr *UnsupportedMethodError
	return errors.As(err, &methodErr)
}
