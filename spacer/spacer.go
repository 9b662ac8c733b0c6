// Package spacer joins and splits DNA segments in a stream using a run of
// 'X' bases as a delimiter: a placeholder base outside {A,C,G,T} that never
// collides with real segment content.
package spacer

// SPDX-FileCopyrightText: The DMR Codec Authors

import "strings"

// DefaultLength is the spacer run length used when none is specified.
const DefaultLength = 6

// Join concatenates segments with a run of spacerLen 'X' bases between each
// pair. A non-positive spacerLen falls back to DefaultLength.
func Join(segments []string, spacerLen int) string {
	if spacerLen <= 0 {
		spacerLen = DefaultLength
	}
	return strings.Join(segments, strings.Repeat("X", spacerLen))
}

// Split reverses Join: it breaks stream on any run of one or more 'X'
// bases, discarding empty segments produced by leading/trailing spacers.
func Split(stream string) []string {
	var segments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(stream); i++ {
		if stream[i] == 'X' {
			flush()
			continue
		}
		current.WriteByte(stream[i])
	}
	flush()

	return segments
}
