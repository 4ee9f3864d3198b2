// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"crypto/sha256"
	"testing"
)

func TestVerify(t *testing.T) {
	data := []byte("hello")
	digest := sha256.Sum256(data)

	if !Verify(data, digest) {
		t.Error("Verify should accept the matching digest")
	}

	// Any single flipped bit must fail the comparison.
	corrupted := digest
	corrupted[0] ^= 0x01
	if Verify(data, corrupted) {
		t.Error("Verify should reject a digest with a flipped bit")
	}

	if Verify([]byte("hellp"), digest) {
		t.Error("Verify should reject modified data")
	}
}

func TestVerifyEmptyData(t *testing.T) {
	if !Verify(nil, sha256.Sum256(nil)) {
		t.Error("empty data should verify against the empty-input digest")
	}
}
