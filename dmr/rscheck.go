package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import "github.com/jesss97/dmrcodec/rs"

func bitsToBytes(bits string) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if bits[i*8+j] == '1' {
				b |= 1
			}
		}
		out[i] = b
	}
	return out
}

func bytesToBits(bs []byte) string {
	out := make([]byte, 0, len(bs)*8)
	for _, b := range bs {
		for j := 7; j >= 0; j-- {
			if b&(1<<uint(j)) != 0 {
				out = append(out, '1')
			} else {
				out = append(out, '0')
			}
		}
	}
	return string(out)
}

// filterCandidates keeps only the candidates that are both fully scheme-
// consistent and Reed-Solomon decodable, replacing each surviving candidate
// with its RS-corrected, re-encoded form: Reed-Solomon can still repair a
// residual byte error that the scheme-level correction above did not touch,
// so the output is the clean codeword, not the raw candidate. Candidates
// are not deduplicated: the later majority vote over one level's
// candidates depends on repeats surviving.
func filterCandidates(t *Tables, codec *rs.Codec, candidates []string, segmentIndex int) []string {
	var out []string
	for _, candidate := range candidates {
		tags, err := Validate(t, candidate, segmentIndex)
		if err != nil || !AllConsistent(tags) {
			continue
		}
		bits, err := StrictDecode(t, candidate, segmentIndex)
		if err != nil || len(bits)%8 != 0 {
			continue
		}
		block := bitsToBytes(bits)
		if len(block) <= codec.NRoots() {
			continue
		}
		data := block[:len(block)-codec.NRoots()]
		parity := block[len(block)-codec.NRoots():]
		if len(data) > codec.MaxDataLen() {
			continue
		}

		corrected, _, err := codec.Decode(data, parity)
		if err != nil {
			continue
		}

		correctedParity, err := codec.Encode(corrected)
		if err != nil {
			continue
		}

		decodedDNA, err := Encode(t, bytesToBits(append(corrected, correctedParity...)), segmentIndex)
		if err != nil {
			continue
		}
		out = append(out, decodedDNA)
	}
	return out
}
