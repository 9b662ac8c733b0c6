// Package media handles the image payload the codec demonstrates itself
// on: loading an image, thresholding it to 1-bit black/white, packing and
// unpacking individual pixel bits, and PackBits run-length (de)compression
// of the packed bytes.
package media

// SPDX-FileCopyrightText: The DMR Codec Authors

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// LoadPNG decodes a PNG image from r.
func LoadPNG(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("media: decoding PNG: %w", err)
	}
	return img, nil
}

// SavePNG encodes img as a PNG to w.
func SavePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("media: encoding PNG: %w", err)
	}
	return nil
}

// Threshold1Bit converts img to grayscale and thresholds it: pixels below
// threshold become 0, the rest become 1. The result is one byte per pixel,
// row-major from the top-left, not yet bit-packed.
func Threshold1Bit(img image.Image, threshold uint8) (bits []byte, width, height int) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	bits = make([]byte, 0, width*height)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y < threshold {
				bits = append(bits, 0)
			} else {
				bits = append(bits, 1)
			}
		}
	}
	return bits, width, height
}

// ImageFromBits reconstructs a 1-bit black/white image from a per-pixel 0/1
// byte slice (as produced by Threshold1Bit), row-major from the top-left.
// Bits beyond width*height are ignored; a short slice leaves the remainder
// black.
func ImageFromBits(bits []byte, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("media: invalid image size %dx%d", width, height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && i < len(bits); i++ {
		x, y := i%width, i/width
		if bits[i] != 0 {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img, nil
}

// PackPixelBits packs a per-pixel 0/1 byte slice 8-to-1 into bytes,
// most-significant bit first, padding the final byte's low bits with 0.
func PackPixelBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// UnpackPixelBits reverses PackPixelBits, producing exactly n per-pixel
// 0/1 values.
func UnpackPixelBits(packed []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		if byteIdx >= len(packed) {
			break
		}
		if packed[byteIdx]&(1<<uint(7-i%8)) != 0 {
			out[i] = 1
		}
	}
	return out
}
