// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/emberon-format/emberon/cmd/emberon/cli"
	"github.com/emberon-format/emberon/lib/container"
)

type inspectParams struct {
	JSON         bool
	ExpectMethod string
}

func inspectCommand() *cli.Command {
	var params inspectParams
	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the container header of an Emberon image",
		Usage:   "emberon inspect <image.png> [flags]",
		Description: `Parse and display the Emberon container header without decompressing
the payload. Useful for checking what an image contains and which
compression method a decode would need.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.BoolVar(&params.JSON, "json", false, "output as JSON")
			flagSet.StringVar(&params.ExpectMethod, "expect-method", "",
				"exit 1 unless the header declares this compression method (none, zlib, lzma, zstd)")
			return flagSet
		},
		Run: func(args []string) error {
			return runInspect(params, args)
		},
	}
}

// headerInfo is the JSON shape of inspect output.
type headerInfo struct {
	Filename       string `json:"filename"`
	Method         string `json:"method"`
	OriginalSize   uint64 `json:"original_size"`
	CompressedSize uint64 `json:"compressed_size"`
	Digest         string `json:"digest"`
}

func runInspect(params inspectParams, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one image path, got %d arguments", len(args))
	}

	buffer, err := loadPixels(args[0])
	if err != nil {
		return err
	}
	stream, err := buffer.Stream()
	if err != nil {
		return err
	}
	header, err := container.ParseHeader(stream)
	if err != nil {
		return err
	}

	if params.ExpectMethod != "" {
		expected, err := container.ParseMethod(params.ExpectMethod)
		if err != nil {
			return err
		}
		if header.Method != expected {
			fmt.Fprintf(os.Stderr, "method is %s, expected %s\n", header.Method, expected)
			return &cli.ExitError{Code: 1}
		}
	}

	if params.JSON {
		return cli.WriteJSON(headerInfo{
			Filename:       header.Filename,
			Method:         header.Method.String(),
			OriginalSize:   header.OriginalSize,
			CompressedSize: header.CompressedSize,
			Digest:         container.FormatDigest(header.Digest),
		})
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Filename:\t%s\n", header.Filename)
	fmt.Fprintf(tw, "Method:\t%s\n", header.Method)
	fmt.Fprintf(tw, "Original size:\t%s (%d bytes)\n", formatSize(header.OriginalSize), header.OriginalSize)
	fmt.Fprintf(tw, "Compressed size:\t%s (%d bytes)\n", formatSize(header.CompressedSize), header.CompressedSize)
	fmt.Fprintf(tw, "Digest:\tsha256:%s\n", container.FormatDigest(header.Digest))
	return tw.Flush()
}

// formatSize returns a human-readable byte size.
func formatSize(bytes uint64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
