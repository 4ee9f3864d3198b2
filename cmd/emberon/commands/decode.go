// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/emberon-format/emberon/cmd/emberon/cli"
	"github.com/emberon-format/emberon/lib/config"
	"github.com/emberon-format/emberon/lib/container"
	"github.com/emberon-format/emberon/lib/decode"
	"github.com/emberon-format/emberon/lib/pixel"
)

// fallbackFilename is used when the container header carries no
// usable filename.
const fallbackFilename = "recovered.bin"

type decodeParams struct {
	Output     string
	ConfigPath string
	Strict     bool
	Quiet      bool
}

func decodeCommand() *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "decode",
		Summary: "Recover the file embedded in a PNG image",
		Usage:   "emberon decode <image.png> [flags]",
		Description: `Decode the Emberon container embedded in a PNG image and write the
recovered file to disk.

A digest mismatch is reported as a warning and the file is still
written; pass --strict to treat the mismatch as a fatal error instead.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVarP(&params.Output, "output", "o", "", "output path (default: filename from the container header)")
			flagSet.StringVar(&params.ConfigPath, "config", "", "path to config file")
			flagSet.BoolVar(&params.Strict, "strict", false, "treat a digest mismatch as a fatal error")
			flagSet.BoolVarP(&params.Quiet, "quiet", "q", false, "suppress progress output")
			return flagSet
		},
		Run: func(args []string) error {
			return runDecode(params, args)
		},
		Examples: []cli.Example{
			{
				Description: "Decode to the filename stored in the header",
				Command:     "emberon decode archive.png",
			},
			{
				Description: "Decode to an explicit path, refusing corrupted content",
				Command:     "emberon decode archive.png -o data.tar --strict",
			},
		},
	}
}

func runDecode(params decodeParams, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one image path, got %d arguments", len(args))
	}
	imagePath := args[0]

	cfg, err := config.Load(params.ConfigPath)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger().With("command", "decode", "image", imagePath)

	buffer, err := loadPixels(imagePath)
	if err != nil {
		return err
	}

	decoder := &decode.Decoder{}
	if params.Strict || cfg.Trust == config.TrustStrict {
		decoder.Trust = decode.StrictTrust{}
	}
	if !params.Quiet && cfg.Progress {
		decoder.Progress = func(phase decode.Phase, percent int) {
			fmt.Fprintf(os.Stderr, "%-11s %3d%%\n", phase, percent)
		}
	}

	// Ctrl-C cancels cooperatively between pipeline stages.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	file, err := decoder.Decode(ctx, buffer)
	if err != nil {
		// Under strict trust a digest mismatch is a refusal, not an
		// unexpected failure: explain the mismatch, then exit 1
		// without the generic "error:" line.
		var integrityErr *decode.IntegrityError
		if errors.As(err, &integrityErr) {
			logger.Error("refusing unverified file: integrity digest mismatch",
				"file", integrityErr.Filename,
				"header", container.FormatDigest(integrityErr.Want),
				"content", container.FormatDigest(integrityErr.Got))
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	if !file.Verified {
		logger.Warn("integrity digest mismatch: the recovered bytes may be corrupted",
			"file", file.Filename)
	}

	outputPath := params.Output
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, safeFilename(file.Filename))
	}
	if err := os.WriteFile(outputPath, file.Data, 0o644); err != nil {
		return fmt.Errorf("writing recovered file: %w", err)
	}

	logger.Info("decoded", "output", outputPath, "bytes", len(file.Data), "verified", file.Verified)
	return nil
}

// loadPixels decodes a PNG file into the pipeline's pixel buffer.
func loadPixels(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding PNG %s: %w", path, err)
	}
	return pixel.FromImage(img), nil
}

// safeFilename reduces a header-supplied filename to a bare name with
// no path components. Header filenames are untrusted; without this a
// crafted container could write outside the output directory.
func safeFilename(name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallbackFilename
	}
	return name
}
