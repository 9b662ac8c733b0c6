// Command dmrencode reads a byte payload (or, with -image, a PNG
// thresholded to 1-bit) and emits a DNA stream: RS-parity per block, then
// DMR-encoded into 2-mers, with spacer runs between segments.
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
		asImage   = pflag.Bool("image", false, "Treat input as a PNG, threshold it to 1-bit, and encode that.")
		threshold = pflag.Uint8("threshold", 128, "Grayscale threshold for -image (0-255).")
		codec     = pflag.IntP("codec", "c", 32, "Reed-Solomon parity bytes per 255 bytes; per-block parity is derived from it.")
		minCodec  = pflag.Int("mincodec", 0, "Minimum parity bytes per block (0 = no floor).")
		minSeg    = pflag.Int("minseg", 0, "Minimum block length in bytes, parity included (0 = no floor).")
		spacerLen = pflag.Int("spacer", spacer.DefaultLength, "Spacer run length between segments.")
		maskSeed  = pflag.Int64("mask-seed", 0, "Seed for the additive payload mask.")
		useMask   = pflag.Bool("mask", false, "Apply the additive mask before encoding.")
		help      = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - encode a byte payload as a DMR/RS DNA stream\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.New(os.Stderr)

	data, err := readInput(*inPath)
	if err != nil {
		logger.Fatal("reading input", "err", err)
	}

	if *asImage {
		img, err := media.LoadPNG(newReader(data))
		if err != nil {
			logger.Fatal("decoding image", "err", err)
		}
		bits, width, height := media.Threshold1Bit(img, *threshold)
		logger.Info("thresholded image", "width", width, "height", height)
		data = media.PackPixelBits(bits)
	}

	if *useMask {
		data = mask.Apply(data, *maskSeed)
	}

	params, err := rs.Recalculate(*codec, *minCodec, *minSeg)
	if err != nil {
		logger.Fatal("resolving RS parameters", "err", err)
	}
	logger.Info("resolved RS parameters", "parity", params.C, "payload", params.L)

	codecImpl, err := rs.NewCodec(params.C)
	if err != nil {
		logger.Fatal("building RS codec", "err", err)
	}

	tables := dmr.DefaultTables()

	var segments []string
	for i := 0; i*params.L < len(data); i++ {
		start := i * params.L
		end := start + params.L
		if end > len(data) {
			end = len(data)
		}
		chunk := data[start:end]

		parity, err := codecImpl.Encode(chunk)
		if err != nil {
			logger.Fatal("RS encoding block", "index", i, "err", err)
		}

		bits := bytesToBitsLocal(append(append([]byte(nil), chunk...), parity...))
		segment, err := dmr.Encode(tables, bits, i)
		if err != nil {
			logger.Fatal("DMR encoding segment", "index", i, "err", err)
		}
		segments = append(segments, segment)
	}

	stream := spacer.Join(segments, *spacerLen)
	if err := writeOutput(*outPath, []byte(stream)); err != nil {
		logger.Fatal("writing output", "err", err)
	}
	logger.Info("encoded", "segments", len(segments), "bases", len(stream))
}

func bytesToBitsLocal(bs []byte) string {
	out := make([]byte, 0, len(bs)*8)
	for _, b := range bs {
		for j := 7; j >= 0; j-- {
			if b&(1<<uint(j)) != 0 {
				out = append(out, '1')
			} else {
				out = append(out, '0')
			}
		}
	}
	return string(out)
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

type byteReader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
