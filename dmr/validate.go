package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

// Tag labels every 2-mer of a segment according to whether it and its
// successor fit the Dynamic Mapping Rule scheme. A tag is not a judgement
// about whether the 2-mer matches the originally-encoded one: it only says
// whether it is consistent with the scheme.
type Tag string

const (
	TagStartTrueNextTrue  Tag = "sT_nmT"
	TagStartTrueNextFalse Tag = "sT_nmF"
	TagStartFalse         Tag = "sF"

	TagMidTrueNextTrue   Tag = "tmT_nmT"
	TagMidTrueNextFalse  Tag = "tmT_nmF"
	TagMidFalseNextTrue  Tag = "tmF_nmT"
	TagMidFalseNextFalse Tag = "tmF_nmF"

	TagLastTrue  Tag = "lT"
	TagLastFalse Tag = "lF"
)

// Inconsistent reports whether tag marks a position that breaks the scheme.
func (tag Tag) Inconsistent() bool {
	switch tag {
	case TagStartFalse, TagStartTrueNextFalse, TagMidTrueNextFalse,
		TagMidFalseNextTrue, TagMidFalseNextFalse, TagLastFalse:
		return true
	}
	return false
}

func twoMers(segment string) []string {
	n := len(segment) / 2
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = segment[2*i : 2*i+2]
	}
	return out
}

func contains4(branches [4]string, v string) bool {
	for _, b := range branches {
		if b == v {
			return true
		}
	}
	return false
}

// Validate tags every 2-mer of segment against the Dynamic Mapping Rule,
// given the segment's position-in-stream class (segmentIndex mod 4). The
// returned slice has one tag per 2-mer, in order.
func Validate(t *Tables, segment string, segmentIndex int) ([]Tag, error) {
	if len(segment)%2 != 0 {
		return nil, &ErrOddLength{Length: len(segment)}
	}
	mers := twoMers(segment)
	if len(mers) == 0 {
		return nil, nil
	}

	tags := make([]Tag, len(mers))
	s := segmentIndex % 4

	initial, _ := t.InitialBranches(s)
	if !contains4(initial, mers[0]) {
		tags[0] = TagStartFalse
	} else if len(mers) == 1 {
		tags[0] = TagStartTrueNextTrue
	} else {
		branches, ok := t.NextBranches(mers[0])
		if ok && contains4(branches, mers[1]) {
			tags[0] = TagStartTrueNextTrue
		} else {
			tags[0] = TagStartTrueNextFalse
		}
	}

	for i := 1; i < len(mers)-1; i++ {
		prevBranches, ok := t.NextBranches(mers[i-1])
		curInScheme := ok && contains4(prevBranches, mers[i])

		curBranches, ok := t.NextBranches(mers[i])
		nextInScheme := ok && contains4(curBranches, mers[i+1])

		switch {
		case curInScheme && nextInScheme:
			tags[i] = TagMidTrueNextTrue
		case curInScheme && !nextInScheme:
			tags[i] = TagMidTrueNextFalse
		case !curInScheme && nextInScheme:
			tags[i] = TagMidFalseNextTrue
		default:
			tags[i] = TagMidFalseNextFalse
		}
	}

	if len(mers) > 1 {
		last := len(mers) - 1
		branches, ok := t.NextBranches(mers[last-1])
		if ok && contains4(branches, mers[last]) {
			tags[last] = TagLastTrue
		} else {
			tags[last] = TagLastFalse
		}
	}

	return tags, nil
}

// AllConsistent reports whether every tag in tags is scheme-consistent.
func AllConsistent(tags []Tag) bool {
	for _, tag := range tags {
		if tag.Inconsistent() {
			return false
		}
	}
	return true
}

// NeighbourGroup is a maximal run of consecutive inconsistent positions,
// length 2 or more; singleton inconsistencies do not form a group.
type NeighbourGroup struct {
	Positions []int
}

// NeighbourGroups scans tags for maximal runs (length >= 2) of consecutive
// inconsistent positions.
func NeighbourGroups(tags []Tag) []NeighbourGroup {
	var groups []NeighbourGroup
	var run []int

	flush := func() {
		if len(run) > 1 {
			groups = append(groups, NeighbourGroup{Positions: append([]int(nil), run...)})
		}
		run = nil
	}

	for i, tag := range tags {
		if tag.Inconsistent() {
			run = append(run, i)
		} else {
			flush()
		}
	}
	flush()

	return groups
}

// SplitOnMidFalseNextTrue re-splits a neighbour group's positions at every
// TagMidFalseNextTrue-tagged position: that tag means the current 2-mer is
// wrong but the one after it already fits the scheme again, so it
// terminates the current sub-group (inclusively) and starts a new one.
func SplitOnMidFalseNextTrue(tags []Tag, group NeighbourGroup) []NeighbourGroup {
	var result []NeighbourGroup
	var current []int

	for _, pos := range group.Positions {
		current = append(current, pos)
		if tags[pos] == TagMidFalseNextTrue {
			result = append(result, NeighbourGroup{Positions: current})
			current = nil
		}
	}
	if len(current) > 0 {
		result = append(result, NeighbourGroup{Positions: current})
	}

	return result
}
