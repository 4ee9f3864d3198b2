// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

// Package container implements the Emberon binary container format: a
// fixed 256-byte header followed by a compressed payload, embedded
// byte-for-byte in the RGBA channels of a lossless PNG image.
//
// The package covers the format side of a decode: parsing and
// validating the header, slicing the payload out of the raw channel
// stream, and dispatching the payload to the decompressor that matches
// the header's declared method. Digest verification and pipeline
// orchestration live in lib/decode.
package container
