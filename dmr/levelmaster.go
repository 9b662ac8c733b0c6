package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import "github.com/jesss97/dmrcodec/rs"

// Correct escalates through the four correction levels in order — Level0,
// Level1, Level2, then Level3 — returning the first level's candidates and
// its level number. It assumes substitution errors only; segments whose
// length changed (insertion/deletion) are not handled by any level.
func Correct(t *Tables, codec *rs.Codec, segment string, segmentIndex int) (candidates []string, level int) {
	for lvl, fn := range []func(*Tables, *rs.Codec, string, int) []string{Level0, Level1, Level2, Level3} {
		if candidates = fn(t, codec, segment, segmentIndex); len(candidates) > 0 {
			return candidates, lvl
		}
	}
	return nil, 3
}
