// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"fmt"

	"github.com/emberon-format/emberon/lib/container"
)

// TrustPolicy decides what happens when the integrity digest of the
// decompressed bytes disagrees with the header. The decode core treats
// the mismatch as a warning; isolating the decision here lets stricter
// callers upgrade it to fatal without touching the pipeline.
type TrustPolicy interface {
	// Unverified is called only on a digest mismatch, with the
	// recovered file and both digests. Returning nil lets the decode
	// complete with file.Verified=false; returning an error aborts it.
	Unverified(file *File, want, got [32]byte) error
}

// PermissiveTrust is the default policy: a corrupted-but-decodable
// file is still returned, with Verified=false for the caller to act
// on (warn, quarantine, or block the download).
type PermissiveTrust struct{}

func (PermissiveTrust) Unverified(file *File, want, got [32]byte) error {
	return nil
}

// StrictTrust upgrades a digest mismatch to a fatal IntegrityError.
type StrictTrust struct{}

func (StrictTrust) Unverified(file *File, want, got [32]byte) error {
	return &IntegrityError{Filename: file.Filename, Want: want, Got: got}
}

// IntegrityError reports a digest mismatch under a strict trust
// policy. Under the default policy the same condition is expressed as
// File.Verified=false instead of an error.
type IntegrityError struct {
	// Filename is the name recorded in the container header.
	Filename string

	// Want is the digest stored in the header.
	Want [32]byte

	// Got is the digest computed over the decompressed bytes.
	Got [32]byte
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("emberon: digest mismatch for %q: header has %s, content hashes to %s",
		e.Filename, container.FormatDigest(e.Want), container.FormatDigest(e.Got))
}
