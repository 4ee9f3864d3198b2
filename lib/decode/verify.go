// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package decode

import "crypto/sha256"

// Digest computes the SHA-256 integrity digest over fully decompressed
// bytes. The algorithm is fixed by the container format.
func Digest(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Verify reports whether data hashes to digest. This is the
// byte-for-byte comparison behind File.Verified.
func Verify(data []byte, digest [32]byte) bool {
	return Digest(data) == digest
}
