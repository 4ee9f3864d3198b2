// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"os"
)

// WriteJSON marshals value as indented JSON and writes it to stdout.
// Commands with a --json flag use this for their machine-readable
// output mode.
func WriteJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
