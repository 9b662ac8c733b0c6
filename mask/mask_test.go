package mask

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestApplyRemove_RoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 255, 128, 64}
	masked := Apply(data, 7)
	assert.NotEqual(t, data, masked)
	assert.Equal(t, data, Remove(masked, 7))
}

func TestApply_IsDeterministicForSameSeed(t *testing.T) {
	data := []byte("some uniform payload................")
	assert.Equal(t, Apply(data, 99), Apply(data, 99))
}

func TestApply_DiffersAcrossSeeds(t *testing.T) {
	data := repeatedBytes(40, 0x42)
	assert.NotEqual(t, Apply(data, 1), Apply(data, 2))
}

func repeatedBytes(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestApplyRemove_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		seed := rapid.Int64().Draw(rt, "seed")
		rng := rand.New(rand.NewSource(seed))
		data := make([]byte, n)
		rng.Read(data)

		masked := Apply(data, seed)
		assert.Len(rt, masked, n)
		assert.Equal(rt, data, Remove(masked, seed))
	})
}
