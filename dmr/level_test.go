package dmr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jesss97/dmrcodec/rs"
)

func buildCleanSegment(t assert.TestingT, codec *rs.Codec, data []byte, segmentIndex int) string {
	parity, err := codec.Encode(data)
	assert.NoError(t, err)
	block := append(append([]byte(nil), data...), parity...)
	segment, err := Encode(DefaultTables(), bytesToBits(block), segmentIndex)
	assert.NoError(t, err)
	return segment
}

func TestLevel0AndLevel1_FindNothingOnACleanSegment(t *testing.T) {
	codec, err := rs.NewCodec(4)
	require.NoError(t, err)
	segment := buildCleanSegment(t, codec, []byte{0x12, 0x34, 0x56, 0x78}, 0)

	assert.Empty(t, Level0(DefaultTables(), codec, segment, 0))
	assert.Empty(t, Level1(DefaultTables(), codec, segment, 0))
}

func TestCorrect_FindsNothingOnACleanSegment(t *testing.T) {
	codec, err := rs.NewCodec(4)
	require.NoError(t, err)
	segment := buildCleanSegment(t, codec, []byte{0xAB, 0xCD}, 1)

	candidates, level := Correct(DefaultTables(), codec, segment, 1)
	assert.Empty(t, candidates)
	assert.Equal(t, 3, level)
}

// TestCorrectionLevels_ReturnOnlyConsistentlyDecodableCandidates exercises
// Level0/Level1/Level2/Correct against segments with a single corrupted
// base, and checks the structural invariant every returned candidate must
// hold regardless of whether that particular corruption happens to be
// recoverable: every candidate is scheme-consistent and decodes to exactly
// as many bits as the original data+parity block held.
func TestCorrectionLevels_ReturnOnlyConsistentlyDecodableCandidates(t *testing.T) {
	codec, err := rs.NewCodec(6)
	require.NoError(t, err)
	tables := DefaultTables()
	bases := []byte{'A', 'C', 'G', 'T'}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "dataLen")
		data := make([]byte, n)
		rng := rand.New(rand.NewSource(int64(rapid.IntRange(0, 1<<30).Draw(rt, "seed"))))
		rng.Read(data)

		segmentIndex := rapid.IntRange(0, 7).Draw(rt, "segmentIndex")
		segment := buildCleanSegment(rt, codec, data, segmentIndex)
		wantBitLen := (len(data) + codec.NRoots()) * 8

		mutated := []byte(segment)
		pos := rapid.IntRange(0, len(mutated)-1).Draw(rt, "pos")
		orig := mutated[pos]
		var repl byte
		for {
			repl = bases[rng.Intn(4)]
			if repl != orig {
				break
			}
		}
		mutated[pos] = repl

		for _, candidates := range [][]string{
			Level0(tables, codec, string(mutated), segmentIndex),
			Level1(tables, codec, string(mutated), segmentIndex),
			Level2(tables, codec, string(mutated), segmentIndex),
		} {
			for _, c := range candidates {
				tags, err := Validate(tables, c, segmentIndex)
				assert.NoError(rt, err)
				assert.True(rt, AllConsistent(tags))

				bits, err := StrictDecode(tables, c, segmentIndex)
				assert.NoError(rt, err)
				assert.Len(rt, bits, wantBitLen)
			}
		}
	})
}

// TestLevel0_RecoversSingleBaseSubstitutionBreakingTheScheme is the
// recoverability counterpart to TestCorrectionLevels_..._Candidates above:
// it doesn't just check that whatever Level0 returns is well-formed, it
// checks that the original payload actually comes back. Mutating the FIRST
// base of a two-mer (rather than its second) is deterministic: every
// two-mer's valid successors share the same first base (map_library's
// branch sets are grouped by it), so changing it always breaks scheme
// consistency at that position, giving Level0 something real to recover.
// The very first two-mer of a segment is excluded: breaking it in isolation
// produces a singleton inconsistency with no neighbour, which (matching
// the reference implementation) no correction level touches.
func TestLevel0_RecoversSingleBaseSubstitutionBreakingTheScheme(t *testing.T) {
	codec, err := rs.NewCodec(6)
	require.NoError(t, err)
	tables := DefaultTables()
	bases := []byte{'A', 'C', 'G', 'T'}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "dataLen")
		data := make([]byte, n)
		rng := rand.New(rand.NewSource(int64(rapid.IntRange(0, 1<<30).Draw(rt, "seed"))))
		rng.Read(data)

		segmentIndex := rapid.IntRange(0, 7).Draw(rt, "segmentIndex")
		segment := buildCleanSegment(rt, codec, data, segmentIndex)
		numMers := len(segment) / 2

		twoMerIdx := rapid.IntRange(1, numMers-1).Draw(rt, "twoMerIdx")
		pos := twoMerIdx * 2
		mutated := []byte(segment)
		orig := mutated[pos]
		var repl byte
		for {
			repl = bases[rng.Intn(4)]
			if repl != orig {
				break
			}
		}
		mutated[pos] = repl

		tags, err := Validate(tables, string(mutated), segmentIndex)
		assert.NoError(rt, err)
		assert.False(rt, AllConsistent(tags), "a first-base substitution must break scheme consistency")

		candidates := Level0(tables, codec, string(mutated), segmentIndex)
		assert.NotEmptyf(rt, candidates, "Level0 must recover a single scheme-breaking substitution")

		recovered := false
		for _, c := range candidates {
			bits, err := StrictDecode(tables, c, segmentIndex)
			assert.NoError(rt, err)
			block := bitsToBytes(bits)
			if len(block) > codec.NRoots() && string(block[:len(block)-codec.NRoots()]) == string(data) {
				recovered = true
				break
			}
		}
		assert.Truef(rt, recovered, "the original payload must be among Level0's recovered candidates")

		corrCandidates, level := Correct(tables, codec, string(mutated), segmentIndex)
		assert.NotEmpty(rt, corrCandidates)
		assert.Equal(rt, 0, level, "a first-base substitution should already be resolved at Level 0")
	})
}

func TestLevel3_AlwaysEmpty(t *testing.T) {
	codec, err := rs.NewCodec(4)
	require.NoError(t, err)
	segment := buildCleanSegment(t, codec, []byte{1, 2, 3}, 0)
	assert.Empty(t, Level3(DefaultTables(), codec, segment, 0))
	assert.Empty(t, Level3(DefaultTables(), codec, "garbage", 0))
}
