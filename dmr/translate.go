package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import (
	"math/rand"
)

var bitPairs = [4]string{"00", "01", "10", "11"}

func bitsToValue(pair string) int {
	switch pair {
	case "00":
		return 0
	case "01":
		return 1
	case "10":
		return 2
	case "11":
		return 3
	}
	return -1
}

// Encode maps a bit string (length a multiple of 2) onto a 2-mer segment
// using segmentIndex's position-in-stream class (segmentIndex mod 4) to
// pick the first 2-mer, then the mapping table's successor branches for
// every subsequent one.
func Encode(t *Tables, bits string, segmentIndex int) (string, error) {
	if len(bits)%2 != 0 {
		return "", &ErrOddLength{Length: len(bits)}
	}
	if len(bits) == 0 {
		return "", nil
	}

	s := segmentIndex % 4
	branches, ok := t.InitialBranches(s)
	if !ok {
		return "", &ErrInvalidConfig{}
	}

	out := make([]byte, 0, len(bits))
	v := bitsToValue(bits[0:2])
	if v < 0 {
		return "", &ErrInvalidBase{Position: 0}
	}
	last := branches[v]
	out = append(out, last...)

	for i := 2; i < len(bits); i += 2 {
		v := bitsToValue(bits[i : i+2])
		if v < 0 {
			return "", &ErrInvalidBase{Position: i}
		}
		next, ok := t.NextBranches(last)
		if !ok {
			return "", &ErrNotInScheme{Position: i - 2, TwoMer: last}
		}
		last = next[v]
		out = append(out, last...)
	}

	return string(out), nil
}

// StrictDecode reverses Encode exactly: every 2-mer in segment must appear
// as one of the expected branches given the previous 2-mer (or, for the
// first, given segmentIndex's class). The first violation is reported as an
// error; callers needing partial/salvaged output should use TolerantDecode.
func StrictDecode(t *Tables, segment string, segmentIndex int) (string, error) {
	if len(segment)%2 != 0 {
		return "", &ErrOddLength{Length: len(segment)}
	}
	if len(segment) == 0 {
		return "", nil
	}
	for i := 0; i < len(segment); i++ {
		switch segment[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return "", &ErrInvalidBase{Position: i, Base: segment[i]}
		}
	}

	s := segmentIndex % 4
	start := segment[0:2]
	bit := t.BitsForInitial(s, start)
	if bit < 0 {
		return "", &ErrNotInScheme{Position: 0, TwoMer: start}
	}

	out := make([]byte, 0, len(segment))
	out = append(out, bitPairs[bit]...)
	last := start

	for i := 2; i < len(segment); i += 2 {
		current := segment[i : i+2]
		bit := t.BitsForNext(last, current)
		if bit < 0 {
			return "", &ErrNotInScheme{Position: i, TwoMer: current}
		}
		out = append(out, bitPairs[bit]...)
		last = current
	}

	return string(out), nil
}

// TolerantDecode is the salvage-oriented counterpart to StrictDecode: a
// 2-mer that breaks the scheme is not necessarily a fatal error. Each
// variation of the previous 2-mer's branches is tried; if one of its own
// successors matches the 2-mer AFTER the break, that variation is assumed
// to be the true (corrupted-in-transit) current 2-mer and translation
// resumes from it. Two consecutive unresolved breaks are not searched
// further: six bits are emitted (a duplicate of the last six already
// produced, or six random bits if fewer than eight have been produced yet)
// for three 2-mer positions (the break and the two after it), and
// translation resumes after them, using the 2-mer two positions past the
// break as the new anchor.
//
// rng drives the random-bits fallback; callers needing deterministic output
// must supply a seeded *rand.Rand.
func TolerantDecode(t *Tables, segment string, segmentIndex int, rng *rand.Rand) (string, error) {
	if len(segment)%2 != 0 {
		return "", &ErrOddLength{Length: len(segment)}
	}
	if len(segment) == 0 {
		return "", nil
	}

	s := segmentIndex % 4
	start := segment[0:2]
	bit := t.BitsForInitial(s, start)
	if bit < 0 {
		return "", &ErrNotInScheme{Position: 0, TwoMer: start}
	}

	bits := bitPairs[bit]
	last := start

	skip := 0
	for i := 2; i < len(segment); i += 2 {
		if skip > 0 {
			skip--
			continue
		}

		current := segment[i : i+2]
		if b := t.BitsForNext(last, current); b >= 0 {
			bits += bitPairs[b]
			last = current
			continue
		}

		// Normal translation failed: try each variation of last's branches,
		// accepting the first whose own successors include the 2-mer that
		// follows the break.
		resolved := false
		if i+4 <= len(segment) {
			nextTwoMer := segment[i+2 : i+4]
			branches, _ := t.NextBranches(last)
			for _, variation := range branches {
				vBranches, ok := t.NextBranches(variation)
				if !ok {
					continue
				}
				for _, candidate := range vBranches {
					if candidate == nextTwoMer {
						b := t.BitsForNext(last, variation)
						if b >= 0 {
							bits += bitPairs[b]
							last = variation
							resolved = true
						}
						break
					}
				}
				if resolved {
					break
				}
			}
		}
		if resolved {
			continue
		}

		// Two unresolved breaks in a row: salvage six bits and skip ahead.
		if len(bits) >= 8 {
			bits += bits[len(bits)-6:]
		} else {
			buf := make([]byte, 6)
			for k := range buf {
				buf[k] = '0' + byte(rng.Intn(2))
			}
			bits += string(buf)
		}

		if i+6 <= len(segment) {
			last = segment[i+4 : i+6]
		}
		skip = 2
	}

	return bits, nil
}
