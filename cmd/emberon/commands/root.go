// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the emberon CLI command tree.
package commands

import (
	"fmt"

	"github.com/emberon-format/emberon/cmd/emberon/cli"
	"github.com/emberon-format/emberon/lib/version"
)

// Root returns the top-level emberon command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "emberon",
		Summary: "Recover files embedded in lossless PNG images",
		Description: `Emberon decodes files that were losslessly embedded in the RGBA
pixel channels of a PNG image using the Emberon container format.

The decoder extracts the raw channel byte stream, parses the fixed
256-byte container header, decompresses the payload with the declared
method, and verifies the SHA-256 integrity digest.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			inspectCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Recover the embedded file, named by the container header",
				Command:     "emberon decode archive.png",
			},
			{
				Description: "Show what an image contains without decoding it",
				Command:     "emberon inspect archive.png",
			},
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Println(version.Full())
			return nil
		},
	}
}
