// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/emberon-format/emberon/cmd/emberon/commands"
	"github.com/emberon-format/emberon/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 1 && (args[0] == "--version" || args[0] == "-V") {
		fmt.Println(version.Info())
		return nil
	}
	return commands.Root().Execute(args)
}
