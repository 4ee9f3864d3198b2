// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

// Package decode recovers an embedded file from a decoded Emberon
// image. It orchestrates the pipeline end to end: raw channel stream
// extraction, header parsing, decompression dispatch, and integrity
// verification, with phase progress reported to an injected sink.
package decode

import (
	"context"

	"github.com/emberon-format/emberon/lib/container"
	"github.com/emberon-format/emberon/lib/pixel"
)

// File is the recovered output of a decode: the original filename and
// bytes, plus whether the integrity digest matched. A digest mismatch
// does not prevent recovery — Verified separates "the bytes were
// decodable" from "the bytes are trustworthy", and the caller's trust
// policy decides what to do with an unverified file.
type File struct {
	// Filename is the name recorded by the encoder. Untrusted:
	// sanitize before using it as a filesystem path.
	Filename string

	// Data is the reconstructed original file content.
	Data []byte

	// Verified is true iff the SHA-256 digest of Data equals the
	// digest stored in the container header.
	Verified bool
}

// Phase identifies a pipeline stage for progress reporting.
type Phase uint8

const (
	// PhaseExtract: raw channel stream extracted from the pixel buffer.
	PhaseExtract Phase = iota
	// PhaseHeader: container header parsed and validated.
	PhaseHeader
	// PhaseDecompress: payload decompressed to original bytes.
	PhaseDecompress
	// PhaseVerify: integrity digest computed and compared.
	PhaseVerify
)

// String returns the phase name used in progress output and logs.
func (p Phase) String() string {
	switch p {
	case PhaseExtract:
		return "extract"
	case PhaseHeader:
		return "header"
	case PhaseDecompress:
		return "decompress"
	case PhaseVerify:
		return "verify"
	default:
		return "unknown"
	}
}

// Completion estimates per phase, reported after the phase finishes.
// The sequence is deterministic for every successful decode.
const (
	percentExtract    = 10
	percentHeader     = 25
	percentDecompress = 75
	percentVerify     = 100
)

// ProgressFunc receives phase-transition notifications. Calls are
// fire-and-forget: the pipeline ignores anything the sink does and
// never calls it again after a cancellation or fatal error.
type ProgressFunc func(phase Phase, percent int)

// Decoder runs the decode pipeline. The zero value is ready to use:
// no progress reporting and the permissive trust policy. A Decoder is
// stateless — one instance may serve concurrent decodes.
type Decoder struct {
	// Progress, when non-nil, receives a notification after each
	// pipeline stage completes.
	Progress ProgressFunc

	// Trust decides whether a digest mismatch aborts the decode.
	// Nil means PermissiveTrust: the file is returned with
	// Verified=false and the caller acts on the warning.
	Trust TrustPolicy
}

// Decode recovers the embedded file from buffer.
//
// Stages run strictly in order — extract, parse header, decompress,
// verify — and any fatal error from the first three stages aborts
// immediately with a typed error from lib/container. A digest mismatch
// in the final stage is non-fatal under the default trust policy.
//
// Cancellation is cooperative: ctx is checked between stages, never
// mid-stage. After cancellation no further progress notifications are
// emitted and all intermediate buffers are abandoned.
func (d *Decoder) Decode(ctx context.Context, buffer *pixel.Buffer) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := buffer.Stream()
	if err != nil {
		return nil, err
	}
	d.report(PhaseExtract, percentExtract)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header, err := container.ParseHeader(stream)
	if err != nil {
		return nil, err
	}
	d.report(PhaseHeader, percentHeader)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := container.Decompress(header.Method, header.Payload(stream), int(header.OriginalSize))
	if err != nil {
		return nil, err
	}
	d.report(PhaseDecompress, percentDecompress)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actual := Digest(data)
	file := &File{
		Filename: header.Filename,
		Data:     data,
		Verified: actual == header.Digest,
	}
	if !file.Verified {
		if err := d.trust().Unverified(file, header.Digest, actual); err != nil {
			return nil, err
		}
	}
	d.report(PhaseVerify, percentVerify)

	return file, nil
}

// Result is the outcome of an asynchronous decode: exactly one of
// File or Err is set.
type Result struct {
	File *File
	Err  error
}

// DecodeAsync runs Decode on its own goroutine and delivers the final
// result on the returned channel (buffered; the decode never blocks on
// a slow receiver). Progress notifications are emitted from the decode
// goroutine. Independent decodes share no mutable state and may run in
// parallel.
func (d *Decoder) DecodeAsync(ctx context.Context, buffer *pixel.Buffer) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		file, err := d.Decode(ctx, buffer)
		results <- Result{File: file, Err: err}
	}()
	return results
}

func (d *Decoder) report(phase Phase, percent int) {
	if d.Progress != nil {
		d.Progress(phase, percent)
	}
}

func (d *Decoder) trust() TrustPolicy {
	if d.Trust != nil {
		return d.Trust
	}
	return PermissiveTrust{}
}
