package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import "github.com/jesss97/dmrcodec/rs"

// Resolution is one segment's outcome after Pipeline: either it decoded
// cleanly (possibly after an RS-only fix that never touched the scheme),
// or Correct resolved it at some level, or no level could resolve it and
// DNA is simply the original, still-erroneous segment.
type Resolution struct {
	Index int
	DNA   string
	// Level is -1 for a segment resolved by Reed-Solomon alone (no scheme
	// inconsistency ever observed), 0..3 for the DMR correction level that
	// resolved it, or -2 if no level could resolve it.
	Level int
}

// Pipeline runs every segment through a first, RS-only pass, then escalates
// anything that pass couldn't clear to the full DMR correction levels:
// exactly the two-pass split used to avoid running the expensive DMR
// correctors on traffic Reed-Solomon alone already handles.
func Pipeline(t *Tables, codec *rs.Codec, segments []string) []Resolution {
	results := make([]Resolution, len(segments))
	var toCorrect []int

	for i, segment := range segments {
		if dna, ok := scanClean(t, codec, segment, i); ok {
			results[i] = Resolution{Index: i, DNA: dna, Level: -1}
		} else {
			toCorrect = append(toCorrect, i)
		}
	}

	for _, i := range toCorrect {
		results[i] = resolveSegment(t, codec, segments[i], i)
	}

	return results
}

func scanClean(t *Tables, codec *rs.Codec, segment string, index int) (string, bool) {
	tags, err := Validate(t, segment, index)
	if err != nil || !AllConsistent(tags) {
		return "", false
	}
	bits, err := StrictDecode(t, segment, index)
	if err != nil || len(bits)%8 != 0 {
		return "", false
	}
	block := bitsToBytes(bits)
	if len(block) <= codec.NRoots() {
		return "", false
	}
	data := block[:len(block)-codec.NRoots()]
	parity := block[len(block)-codec.NRoots():]

	corrected, _, err := codec.Decode(data, parity)
	if err != nil {
		return "", false
	}
	correctedParity, err := codec.Encode(corrected)
	if err != nil {
		return "", false
	}
	dna, err := Encode(t, bytesToBits(append(corrected, correctedParity...)), index)
	if err != nil {
		return "", false
	}
	return dna, true
}

// resolveSegment escalates through Correct's levels, then resolves
// multiple surviving candidates the same way the reference pipeline does:
// unanimous agreement wins outright; otherwise a plurality vote; a tie is
// broken by which candidate is most similar (by edit distance) to the
// original erroneous segment.
func resolveSegment(t *Tables, codec *rs.Codec, segment string, index int) Resolution {
	candidates, level := Correct(t, codec, segment, index)
	if len(candidates) == 0 {
		return Resolution{Index: index, DNA: segment, Level: -2}
	}

	allSame := true
	for _, c := range candidates[1:] {
		if c != candidates[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return Resolution{Index: index, DNA: candidates[0], Level: level}
	}

	counts := make(map[string]int)
	var uniq []string
	for _, c := range candidates {
		if counts[c] == 0 {
			uniq = append(uniq, c)
		}
		counts[c]++
	}

	maxCount := 0
	for _, c := range uniq {
		if counts[c] > maxCount {
			maxCount = counts[c]
		}
	}
	var winners []string
	for _, c := range uniq {
		if counts[c] == maxCount {
			winners = append(winners, c)
		}
	}

	if len(winners) == 1 {
		return Resolution{Index: index, DNA: winners[0], Level: level}
	}

	best := winners[0]
	bestScore := similarity(segment, best)
	for _, w := range winners[1:] {
		if s := similarity(segment, w); s > bestScore {
			best, bestScore = w, s
		}
	}
	return Resolution{Index: index, DNA: best, Level: level}
}
