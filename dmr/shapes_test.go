package dmr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshMers encodes enough random bits to produce at least n two-mers and
// returns them, so each shape test has a genuine, scheme-consistent chain to
// search for.
func freshMers(t *testing.T, n int, segmentIndex int) []string {
	t.Helper()
	tables := DefaultTables()
	rng := rand.New(rand.NewSource(int64(n)*131 + int64(segmentIndex)))
	bits := randomBits(rng, n*2)
	segment, err := Encode(tables, bits, segmentIndex)
	require.NoError(t, err)
	return twoMers(segment)
}

func join(mers ...string) string {
	out := ""
	for _, m := range mers {
		out += m
	}
	return out
}

func TestShapeS2_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 4, 1)
	sp := shapeS2(mers, tables, 1, true)
	assert.Contains(t, sp.candidates, join(mers[0], mers[1]))
}

func TestShapeS3_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 4, 2)
	sp := shapeS3(mers, tables, 2, true)
	assert.Contains(t, sp.candidates, join(mers[0], mers[1], mers[2]))
}

func TestShapeS4_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 5, 3)
	sp := shapeS4(mers, tables, 3, true)
	assert.Contains(t, sp.candidates, join(mers[0], mers[1], mers[2], mers[3]))
}

func TestShapeE2_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 6, 0)
	n := len(mers)
	sp := shapeE2(mers, tables, n-2, n-1, true)
	assert.Contains(t, sp.candidates, join(mers[n-2], mers[n-1]))
}

func TestShapeE3_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 6, 0)
	n := len(mers)
	sp := shapeE3(mers, tables, n-3, n-1, true)
	assert.Contains(t, sp.candidates, join(mers[n-3], mers[n-2], mers[n-1]))
}

func TestShapeE3_Level1AddsUnconditionalBranches(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 6, 0)
	n := len(mers)
	strict := shapeE3(mers, tables, n-3, n-1, true)
	loose := shapeE3(mers, tables, n-3, n-1, false)
	assert.GreaterOrEqual(t, len(loose.candidates), len(strict.candidates))
	assert.Contains(t, loose.candidates, join(mers[n-3], mers[n-2], mers[n-1]))
}

func TestShapeE4_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 7, 0)
	n := len(mers)
	sp := shapeE4(mers, tables, n-4, n-1, true)
	assert.Contains(t, sp.candidates, join(mers[n-4], mers[n-3], mers[n-2], mers[n-1]))
}

func TestShapeM2_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 8, 0)
	sp := shapeM2(mers, tables, 3, 4, true)
	assert.Contains(t, sp.candidates, join(mers[3], mers[4]))
}

func TestShapeM3_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 8, 0)
	sp := shapeM3(mers, tables, 2, 3, 4, true)
	assert.Contains(t, sp.candidates, join(mers[2], mers[3], mers[4]))
}

func TestShapeM4_ContainsOriginalChain(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 9, 0)
	sp := shapeM4(mers, tables, 2, 3, 4, 5, true)
	assert.Contains(t, sp.candidates, join(mers[2], mers[3], mers[4], mers[5]))
}

func TestShapeM5_ContainsOriginalChainBothVariants(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 10, 0)
	want := join(mers[2], mers[3], mers[4], mers[5], mers[6])

	strict := shapeM5(mers, tables, 2, 4, 6, true)
	assert.Contains(t, strict.candidates, want)

	loose := shapeM5(mers, tables, 2, 4, 6, false)
	assert.Contains(t, loose.candidates, want)
}

func TestBaseMatch_NotRequiredAlwaysTrue(t *testing.T) {
	assert.True(t, baseMatch("AA", "CC", false))
}

func TestBaseMatch_RequiredChecksEitherBase(t *testing.T) {
	assert.True(t, baseMatch("AC", "AG", true))  // shares first base
	assert.True(t, baseMatch("AC", "GC", true))  // shares second base
	assert.False(t, baseMatch("AC", "GT", true)) // shares neither
}

func TestClassifyGroup_DispatchesByShapeAndPosition(t *testing.T) {
	tables := DefaultTables()
	mers := freshMers(t, 8, 0)
	n := len(mers)
	tags, err := Validate(tables, join(mers...), 0)
	require.NoError(t, err)

	sp, ok := classifyGroup(mers, tags, tables, 0, true, NeighbourGroup{Positions: []int{0, 1}})
	require.True(t, ok)
	assert.Equal(t, 0, sp.start)
	assert.Equal(t, 1, sp.end)

	sp, ok = classifyGroup(mers, tags, tables, 0, true, NeighbourGroup{Positions: []int{n - 2, n - 1}})
	require.True(t, ok)
	assert.Equal(t, n-2, sp.start)

	sp, ok = classifyGroup(mers, tags, tables, 0, true, NeighbourGroup{Positions: []int{3, 4}})
	require.True(t, ok)
	assert.Equal(t, 3, sp.start)
	assert.Equal(t, 4, sp.end)

	_, ok = classifyGroup(mers, tags, tables, 0, true, NeighbourGroup{Positions: []int{1, 2, 3, 4, 5, 6}})
	assert.False(t, ok, "groups longer than 5 match no known shape")
}

func TestClassifyGroup_FallsThroughToInteriorShapeWhenBoundaryTagsDontMatch(t *testing.T) {
	tables := DefaultTables()

	// Encoding "00000000" at segmentIndex 0 gives "AAAAAAAA"; corrupting
	// only the first base of the second two-mer gives this segment, whose
	// tags are [sT_nmF, tmF_nmT, tmT_nmT, lT] — the group [0,1] has the
	// position of S2 but not its required tag pattern ([sF, tmF_nmT]).
	mers := []string{"AA", "CA", "AA", "AA"}
	segment := join(mers...)
	tags, err := Validate(tables, segment, 0)
	require.NoError(t, err)

	sp, ok := classifyGroup(mers, tags, tables, 0, true, NeighbourGroup{Positions: []int{0, 1}})
	require.True(t, ok, "a mismatched boundary tag pattern must still fall through to the interior shape")
	assert.Equal(t, 0, sp.start)
	assert.Equal(t, 1, sp.end)
	assert.Contains(t, sp.candidates, "AAAA",
		"the interior M2 shape must include the uncorrupted original pair")
}
