package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import (
	"strings"

	"github.com/jesss97/dmrcodec/rs"
)

// correctSegment is shared by Level0 and Level1: it finds every neighbour
// group of inconsistent 2-mers, generates replacement candidates per group
// via classifyGroup, and reassembles full-segment candidates as the
// Cartesian product of each group's options against the unchanged 2-mers
// between them. It reports no candidates (nil) if the segment is already
// consistent, if any neighbour group exceeds 5 positions, or if any group
// matches none of the known shapes or yields no candidates of its own.
func correctSegment(t *Tables, segment string, segmentIndex int, baseMatchRequired bool) []string {
	tags, err := Validate(t, segment, segmentIndex)
	if err != nil || AllConsistent(tags) {
		return nil
	}

	mers := twoMers(segment)
	n := len(mers)
	s := segmentIndex % 4

	var groups []NeighbourGroup
	for _, g := range NeighbourGroups(tags) {
		groups = append(groups, SplitOnMidFalseNextTrue(tags, g)...)
	}
	if len(groups) == 0 {
		return nil
	}
	for _, g := range groups {
		if len(g.Positions) > 5 {
			return nil
		}
	}

	spans := make([]span, 0, len(groups))
	for _, g := range groups {
		sp, ok := classifyGroup(mers, tags, t, s, baseMatchRequired, g)
		if !ok || len(sp.candidates) == 0 {
			return nil
		}
		spans = append(spans, sp)
	}

	var parts [][]string
	cursor := 0
	for _, sp := range spans {
		if sp.start > cursor {
			parts = append(parts, []string{strings.Join(mers[cursor:sp.start], "")})
		}
		parts = append(parts, sp.candidates)
		cursor = sp.end + 1
	}
	if cursor < n {
		parts = append(parts, []string{strings.Join(mers[cursor:], "")})
	}

	results := []string{""}
	for _, part := range parts {
		next := make([]string, 0, len(results)*len(part))
		for _, prefix := range results {
			for _, opt := range part {
				next = append(next, prefix+opt)
			}
		}
		results = next
	}

	return results
}

// Level0 generates replacement candidates under the strictest correction
// rule — every substituted 2-mer must share at least one base with the
// 2-mer it replaces, consistent with a single-base substitution error — and
// returns the Reed-Solomon-corrected, re-encoded DNA of every candidate
// that both fits the scheme and decodes cleanly.
func Level0(t *Tables, codec *rs.Codec, segment string, segmentIndex int) []string {
	return filterCandidates(t, codec, correctSegment(t, segment, segmentIndex, true), segmentIndex)
}

// Level1 generates replacement candidates without Level0's base-sharing
// restriction, admitting substitutions Level0 would not consider. It is
// tried only after Level0 finds nothing.
func Level1(t *Tables, codec *rs.Codec, segment string, segmentIndex int) []string {
	return filterCandidates(t, codec, correctSegment(t, segment, segmentIndex, false), segmentIndex)
}
