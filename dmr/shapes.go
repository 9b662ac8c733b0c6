package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

// This file generates replacement candidates for a single neighbour group of
// inconsistent 2-mers, one function per observed group shape: anchored at
// the segment's start (S2/S3/S4), anchored at its end (E2/E3/E4), or fully
// interior with a trustworthy 2-mer on both sides (M2/M3/M4/M5).
//
// baseMatchRequired selects between the Level 0 and Level 1 correctors: when
// true, every replacement 2-mer must share at least one base with the 2-mer
// it replaces (single-substitution assumption); Level 1 drops that
// restriction and, for the 3-long end shape, additionally considers bridging
// paths that ignore the trailing anchor altogether.

func baseMatch(candidate, original string, required bool) bool {
	if !required {
		return true
	}
	return candidate[0] == original[0] || candidate[1] == original[1]
}

// span describes a replacement for mers[start..end] (inclusive) together
// with every candidate 2-mer string covering that exact range.
type span struct {
	start, end int
	candidates []string
}

func shapeS2(mers []string, t *Tables, s int, baseMatchRequired bool) span {
	var out []string
	branches, _ := t.InitialBranches(s)
	for _, v := range branches {
		if baseMatch(v, mers[0], baseMatchRequired) {
			out = append(out, v+mers[1])
		}
	}
	return span{0, 1, out}
}

func shapeS3(mers []string, t *Tables, s int, baseMatchRequired bool) span {
	var out []string
	branches, _ := t.InitialBranches(s)
	for _, v1 := range branches {
		if !baseMatch(v1, mers[0], baseMatchRequired) {
			continue
		}
		for _, v2 := range mustNext(t, v1) {
			if !baseMatch(v2, mers[1], baseMatchRequired) {
				continue
			}
			if contains4(mustNext(t, v2), mers[2]) {
				out = append(out, v1+v2+mers[2])
			}
		}
	}
	return span{0, 2, out}
}

func shapeS4(mers []string, t *Tables, s int, baseMatchRequired bool) span {
	var out []string
	branches, _ := t.InitialBranches(s)
	for _, v1 := range branches {
		if !baseMatch(v1, mers[0], baseMatchRequired) {
			continue
		}
		for _, v2 := range mustNext(t, v1) {
			if !baseMatch(v2, mers[1], baseMatchRequired) {
				continue
			}
			for _, v3 := range mustNext(t, v2) {
				if !baseMatch(v3, mers[2], baseMatchRequired) {
					continue
				}
				if contains4(mustNext(t, v3), mers[3]) {
					out = append(out, v1+v2+v3+mers[3])
				}
			}
		}
	}
	return span{0, 3, out}
}

func shapeE2(mers []string, t *Tables, g0, gl int, baseMatchRequired bool) span {
	var out []string
	anchor := mers[g0]
	for _, v := range mustNext(t, anchor) {
		if baseMatch(v, mers[gl], baseMatchRequired) {
			out = append(out, anchor+v)
		}
	}
	return span{g0, gl, out}
}

func shapeE3(mers []string, t *Tables, g0, gl int, baseMatchRequired bool) span {
	var out []string
	anchor := mers[g0]
	for _, v1 := range mustNext(t, anchor) {
		if baseMatch(v1, mers[g0+1], baseMatchRequired) {
			for _, v2 := range mustNext(t, v1) {
				if baseMatch(v2, mers[gl], baseMatchRequired) {
					out = append(out, anchor+v1+v2)
				}
			}
		}
	}
	if !baseMatchRequired {
		for _, v1 := range mustNext(t, anchor) {
			for _, v2 := range mustNext(t, v1) {
				out = append(out, anchor+v1+v2)
			}
		}
	}
	return span{g0, gl, out}
}

func shapeE4(mers []string, t *Tables, g0, gl int, baseMatchRequired bool) span {
	var out []string
	anchor := mers[g0]
	for _, v1 := range mustNext(t, anchor) {
		if !baseMatch(v1, mers[g0+1], baseMatchRequired) {
			continue
		}
		for _, v2 := range mustNext(t, v1) {
			if !baseMatch(v2, mers[g0+2], baseMatchRequired) {
				continue
			}
			for _, v3 := range mustNext(t, v2) {
				if baseMatch(v3, mers[gl], baseMatchRequired) {
					out = append(out, anchor+v1+v2+v3)
				}
			}
		}
	}
	return span{g0, gl, out}
}

func shapeM2(mers []string, t *Tables, g0, gl int, baseMatchRequired bool) span {
	var out []string
	last2 := mers[g0]
	current2 := mers[gl]
	for _, v := range mustNext(t, last2) {
		if baseMatch(v, current2, baseMatchRequired) {
			out = append(out, last2+v)
		}
	}
	for _, key := range t.Predecessors(current2) {
		if baseMatch(key, last2, baseMatchRequired) {
			out = append(out, key+current2)
		}
	}
	return span{g0, gl, out}
}

func shapeM3(mers []string, t *Tables, g0, gmid, gl int, baseMatchRequired bool) span {
	var out []string
	left := mers[g0]
	right := mers[gl]
	for _, v1 := range mustNext(t, left) {
		if !baseMatch(v1, mers[gmid], baseMatchRequired) {
			continue
		}
		if contains4(mustNext(t, v1), right) {
			out = append(out, left+v1+right)
		}
	}
	return span{g0, gl, out}
}

func shapeM4(mers []string, t *Tables, g0, g1, g2, gl int, baseMatchRequired bool) span {
	var out []string
	left := mers[g0]
	right := mers[gl]
	for _, v1 := range mustNext(t, left) {
		if !baseMatch(v1, mers[g1], baseMatchRequired) {
			continue
		}
		for _, v2 := range mustNext(t, v1) {
			if !baseMatch(v2, mers[g2], baseMatchRequired) {
				continue
			}
			if contains4(mustNext(t, v2), right) {
				out = append(out, left+v1+v2+right)
			}
		}
	}
	return span{g0, gl, out}
}

func shapeM5(mers []string, t *Tables, g0, gmid, gl int, baseMatchRequired bool) span {
	var out []string
	first := mers[g0]
	middle := mers[gmid]
	last := mers[gl]

	if baseMatchRequired {
		var opt1, opt2 []string
		for _, v1 := range mustNext(t, first) {
			if baseMatch(v1, mers[gmid-1], true) && contains4(mustNext(t, v1), middle) {
				opt1 = append(opt1, v1)
			}
		}
		for _, v2 := range mustNext(t, middle) {
			if baseMatch(v2, mers[gmid+1], true) && contains4(mustNext(t, v2), last) {
				opt2 = append(opt2, v2)
			}
		}
		for _, o1 := range opt1 {
			for _, o2 := range opt2 {
				out = append(out, first+o1+middle+o2+last)
			}
		}
		return span{g0, gl, out}
	}

	for _, v1 := range mustNext(t, first) {
		for _, v2 := range mustNext(t, v1) {
			for _, v3 := range mustNext(t, v2) {
				if contains4(mustNext(t, v3), last) {
					out = append(out, first+v1+v2+v3+last)
				}
			}
		}
	}
	return span{g0, gl, out}
}

func mustNext(t *Tables, twoMer string) [4]string {
	branches, ok := t.NextBranches(twoMer)
	if !ok {
		return [4]string{}
	}
	return branches
}

// classifyGroup dispatches a single neighbour group to its shape generator.
// A boundary shape (S2/S3/S4 anchored at the segment's start, E2/E3/E4
// anchored at its end) is only used when the group's own tags match that
// shape's exact tag pattern — the same gate the original validation_list ==
// [...] checks apply before each boundary branch. A group whose length and
// position would otherwise fit a boundary shape, but whose tags don't match
// (e.g. a start-anchored group whose first tag is sT_nmF rather than sF),
// falls through to the generic interior shape for its length, exactly as
// the reference implementation's elif chain falls through to its own
// length-only branch. ok is false if the group matches nothing at all
// (groups longer than 5 are rejected by the caller before this is reached).
func classifyGroup(mers []string, tags []Tag, t *Tables, s int, baseMatchRequired bool, g NeighbourGroup) (span, bool) {
	n := len(mers)
	pos := g.Positions
	g0, gl := pos[0], pos[len(pos)-1]

	switch {
	case len(pos) == 2 && g0 == 0 && gl == 1 &&
		tags[0] == TagStartFalse && tags[1] == TagMidFalseNextTrue:
		return shapeS2(mers, t, s, baseMatchRequired), true
	case len(pos) == 3 && g0 == 0 && gl == 2 &&
		tags[0] == TagStartFalse && tags[1] == TagMidFalseNextFalse && tags[2] == TagMidFalseNextTrue:
		return shapeS3(mers, t, s, baseMatchRequired), true
	case len(pos) == 4 && g0 == 0 && gl == 3 &&
		tags[0] == TagStartFalse && tags[1] == TagMidFalseNextFalse &&
		tags[2] == TagMidFalseNextFalse && tags[3] == TagMidFalseNextTrue:
		return shapeS4(mers, t, s, baseMatchRequired), true
	case len(pos) == 2 && g0 == n-2 && gl == n-1 &&
		tags[g0] == TagMidTrueNextFalse && tags[gl] == TagLastFalse:
		return shapeE2(mers, t, g0, gl, baseMatchRequired), true
	case len(pos) == 3 && g0 == n-3 && gl == n-1 &&
		tags[g0] == TagMidTrueNextFalse && tags[g0+1] == TagMidFalseNextFalse && tags[gl] == TagLastFalse:
		return shapeE3(mers, t, g0, gl, baseMatchRequired), true
	case len(pos) == 4 && g0 == n-4 && gl == n-1 &&
		tags[g0] == TagMidTrueNextFalse && tags[g0+1] == TagMidFalseNextFalse &&
		tags[g0+2] == TagMidFalseNextFalse && tags[gl] == TagLastFalse:
		return shapeE4(mers, t, g0, gl, baseMatchRequired), true
	case len(pos) == 2:
		return shapeM2(mers, t, g0, gl, baseMatchRequired), true
	case len(pos) == 3:
		return shapeM3(mers, t, g0, pos[1], gl, baseMatchRequired), true
	case len(pos) == 4:
		return shapeM4(mers, t, g0, pos[1], pos[2], gl, baseMatchRequired), true
	case len(pos) == 5:
		return shapeM5(mers, t, g0, pos[2], gl, baseMatchRequired), true
	default:
		return span{}, false
	}
}
