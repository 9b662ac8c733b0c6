// Command dmrdecode reverses dmrencode: splits a DNA stream on spacer runs,
// runs each segment through the DMR/RS correction pipeline, and reassembles
// the original byte payload (or, with -image, a PNG).
package main

// SPDX-FileCopyrightText: The DMR Codec Authors

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/jesss97/dmrcodec/dmr"
	"github.com/jesss97/dmrcodec/mask"
	"github.com/jesss97/dmrcodec/media"
	"github.com/jesss97/dmrcodec/rs"
	"github.com/jesss97/dmrcodec/spacer"
)

func main() {
	var (
		inPath    = pflag.StringP("in", "i", "-", "Input file (\"-\" for stdin).")
		outPath   = pflag.StringP("out", "o", "-", "Output file (\"-\" for stdout).")
		asImage   = pflag.Bool("image", false, "Reassemble a PNG of the given -width/-height instead of raw bytes.")
		width     = pflag.Int("width", 0, "Image width, required with -image.")
		height    = pflag.Int("height", 0, "Image height, required with -image.")
		codec     = pflag.IntP("codec", "c", 32, "Reed-Solomon parity bytes per 255 bytes (must match encoding).")
		minCodec  = pflag.Int("mincodec", 0, "Minimum parity bytes per block (must match encoding).")
		minSeg    = pflag.Int("minseg", 0, "Minimum block length in bytes, parity included (must match encoding).")
		maskSeed  = pflag.Int64("mask-seed", 0, "Seed for the additive payload mask (must match encoding).")
		useMask   = pflag.Bool("mask", false, "Reverse the additive mask after decoding.")
		help      = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - decode a DMR/RS DNA stream back to bytes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.New(os.Stderr)

	raw, err := readInput(*inPath)
	if err != nil {
		logger.Fatal("reading input", "err", err)
	}

	params, err := rs.Recalculate(*codec, *minCodec, *minSeg)
	if err != nil {
		logger.Fatal("resolving RS parameters", "err", err)
	}
	codecImpl, err := rs.NewCodec(params.C)
	if err != nil {
		logger.Fatal("building RS codec", "err", err)
	}

	tables := dmr.DefaultTables()
	segments := spacer.Split(string(raw))
	results := dmr.Pipeline(tables, codecImpl, segments)

	var data []byte
	for _, r := range results {
		logLevel(logger, r)

		bits, err := dmr.StrictDecode(tables, r.DNA, r.Index)
		if err != nil {
			logger.Error("segment undecodable after pipeline", "index", r.Index, "err", err)
			continue
		}
		block := bitsToBytesLocal(bits)
		if len(block) <= params.C {
			logger.Error("segment too short to hold parity", "index", r.Index)
			continue
		}
		data = append(data, block[:len(block)-params.C]...)
	}

	if *useMask {
		data = mask.Remove(data, *maskSeed)
	}

	if *asImage {
		bits := make([]byte, 0, len(data)*8)
		for _, b := range data {
			for j := 7; j >= 0; j-- {
				bits = append(bits, (b>>uint(j))&1)
			}
		}
		img, err := media.ImageFromBits(bits, *width, *height)
		if err != nil {
			logger.Fatal("reconstructing image", "err", err)
		}
		w, err := openOutput(*outPath)
		if err != nil {
			logger.Fatal("opening output", "err", err)
		}
		defer w.Close()
		if err := media.SavePNG(w, img); err != nil {
			logger.Fatal("writing PNG", "err", err)
		}
		return
	}

	if err := writeOutput(*outPath, data); err != nil {
		logger.Fatal("writing output", "err", err)
	}
}

func logLevel(logger *log.Logger, r dmr.Resolution) {
	switch r.Level {
	case -1:
		logger.Debug("segment clean", "index", r.Index)
	case -2:
		logger.Warn("segment unrecoverable", "index", r.Index)
	default:
		logger.Info("segment corrected", "index", r.Index, "level", r.Level)
	}
}

func bitsToBytesLocal(bits string) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if bits[i*8+j] == '1' {
				b |= 1
			}
		}
		out[i] = b
	}
	return out
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
