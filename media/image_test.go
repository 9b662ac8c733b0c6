package media

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackPixelBits_RoundTrip(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	packed := PackPixelBits(bits)
	unpacked := UnpackPixelBits(packed, len(bits))
	assert.Equal(t, bits, unpacked)
}

func TestPackPixelBits_PacksEightPerByteMSBFirst(t *testing.T) {
	bits := []byte{1, 0, 0, 0, 0, 0, 0, 0} // 0x80
	packed := PackPixelBits(bits)
	require.Len(t, packed, 1)
	assert.Equal(t, byte(0x80), packed[0])
}

func TestThreshold1Bit_SplitsBlackAndWhite(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(1, 0, color.Gray{Y: 250})

	bits, w, h := Threshold1Bit(img, 128)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	require.Len(t, bits, 2)
	assert.Equal(t, byte(0), bits[0])
	assert.Equal(t, byte(1), bits[1])
}

func TestImageFromBits_RejectsNonPositiveSize(t *testing.T) {
	_, err := ImageFromBits([]byte{1, 0}, 0, 5)
	assert.Error(t, err)
	_, err = ImageFromBits([]byte{1, 0}, 5, 0)
	assert.Error(t, err)
}

func TestThresholdAndImageFromBits_RoundTrip(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	vals := []uint8{0, 255, 0, 255, 0, 255}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray(x, y, color.Gray{Y: vals[i]})
			i++
		}
	}

	bits, w, h := Threshold1Bit(img, 128)
	rebuilt, err := ImageFromBits(bits, w, h)
	require.NoError(t, err)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			original := img.GrayAt(x, y).Y
			got := rebuilt.GrayAt(x, y).Y
			if original >= 128 {
				assert.Equal(t, uint8(255), got)
			} else {
				assert.Equal(t, uint8(0), got)
			}
		}
	}
}

func TestLoadSavePNG_RoundTrip(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := 0; i < 16; i++ {
		if i%2 == 0 {
			img.SetGray(i%4, i/4, color.Gray{Y: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, SavePNG(&buf, img))

	loaded, err := LoadPNG(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), loaded.Bounds())
}
