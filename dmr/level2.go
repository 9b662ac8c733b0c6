package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import "github.com/jesss97/dmrcodec/rs"

// Level2 handles inconsistencies that Level0 and Level1 could not resolve
// on their own: a substitution can coincidentally still fit the mapping
// scheme at one position while breaking it at another, producing a
// neighbour group whose true extent is larger than what validation alone
// reports. Level2 takes the longest neighbour group (without Level0/1's
// tmF_nmT re-split), and for every position in it other than the first,
// tries substituting each of the 16 possible 2-mers there and re-running
// Level0 (then, failing that, Level1) on the result. The first position and
// substitution to produce any candidates wins; nothing found anywhere
// yields nil.
func Level2(t *Tables, codec *rs.Codec, segment string, segmentIndex int) []string {
	if len(segment)%2 != 0 {
		return nil
	}

	tags, err := Validate(t, segment, segmentIndex)
	if err != nil || AllConsistent(tags) {
		return nil
	}

	groups := NeighbourGroups(tags)
	if len(groups) == 0 {
		return nil
	}

	longest := groups[0]
	for _, g := range groups[1:] {
		if len(g.Positions) > len(longest.Positions) {
			longest = g
		}
	}

	base := longest.Positions[0]
	maxNeighbour := len(longest.Positions)

	for place := 1; place < maxNeighbour; place++ {
		position := base + place
		for _, twoMer := range AllTwoMers() {
			option := substituteTwoMer(segment, position, twoMer)
			for _, try := range []func(*Tables, *rs.Codec, string, int) []string{Level0, Level1} {
				if candidates := try(t, codec, option, segmentIndex); len(candidates) > 0 {
					return candidates
				}
			}
		}
	}

	return nil
}

func substituteTwoMer(segment string, twoMerIndex int, replacement string) string {
	start := twoMerIndex * 2
	return segment[:start] + replacement + segment[start+2:]
}

// Level3 is reserved for a future correction strategy; it currently finds
// nothing.
func Level3(t *Tables, codec *rs.Codec, segment string, segmentIndex int) []string {
	return nil
}
