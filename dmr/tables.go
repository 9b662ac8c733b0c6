package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed mapping_default.yaml
var defaultMappingYAML []byte

// mappingFile is the on-disk shape of a Dynamic Mapping Rule table.
type mappingFile struct {
	Initial map[string][]string `yaml:"initial_2mer"`
	Library map[string][]string `yaml:"map_library"`
}

// Tables holds a fully resolved Dynamic Mapping Rule: the four segment-index
// classes' initial branches, and every 2-mer's four successor branches.
type Tables struct {
	initial [4][4]string
	next    map[string][4]string
}

var defaultTables *Tables

func init() {
	t, err := parseMapping(defaultMappingYAML)
	if err != nil {
		panic("dmr: embedded default mapping table is invalid: " + err.Error())
	}
	defaultTables = t
}

// DefaultTables returns the built-in Dynamic Mapping Rule table.
func DefaultTables() *Tables {
	return defaultTables
}

// LoadTables parses a Dynamic Mapping Rule table from YAML in the same shape
// as the embedded default, for callers exercising an alternate scheme.
func LoadTables(data []byte) (*Tables, error) {
	return parseMapping(data)
}

func parseMapping(data []byte) (*Tables, error) {
	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("dmr: parsing mapping table: %w", err)
	}

	t := &Tables{next: make(map[string][4]string, len(mf.Library))}

	for _, s := range []string{"0", "1", "2", "3"} {
		branches, ok := mf.Initial[s]
		if !ok || len(branches) != 4 {
			return nil, fmt.Errorf("dmr: initial_2mer[%q] must list exactly 4 two-mers", s)
		}
		idx := int(s[0] - '0')
		copy(t.initial[idx][:], branches)
	}

	for twoMer, branches := range mf.Library {
		if len(twoMer) != 2 {
			return nil, fmt.Errorf("dmr: map_library key %q is not a 2-mer", twoMer)
		}
		if len(branches) != 4 {
			return nil, fmt.Errorf("dmr: map_library[%q] must list exactly 4 two-mers", twoMer)
		}
		var arr [4]string
		copy(arr[:], branches)
		t.next[twoMer] = arr
	}

	return t, nil
}

// InitialBranches returns the 4 candidate first 2-mers for a segment whose
// position-in-stream class is s (0..3), one per 2-bit value 0..3.
func (t *Tables) InitialBranches(s int) ([4]string, bool) {
	if s < 0 || s > 3 {
		return [4]string{}, false
	}
	return t.initial[s], true
}

// NextBranches returns the 4 candidate successor 2-mers for twoMer, one per
// 2-bit value 0..3.
func (t *Tables) NextBranches(twoMer string) ([4]string, bool) {
	branches, ok := t.next[twoMer]
	return branches, ok
}

// BitsForInitial returns the 2-bit value (0..3) that produced candidate from
// segment-class s's initial branches, or -1 if candidate is not one of them.
func (t *Tables) BitsForInitial(s int, candidate string) int {
	branches, ok := t.InitialBranches(s)
	if !ok {
		return -1
	}
	for b, v := range branches {
		if v == candidate {
			return b
		}
	}
	return -1
}

// BitsForNext returns the 2-bit value (0..3) that produced candidate from
// twoMer's successor branches, or -1 if candidate is not one of them.
func (t *Tables) BitsForNext(twoMer, candidate string) int {
	branches, ok := t.NextBranches(twoMer)
	if !ok {
		return -1
	}
	for b, v := range branches {
		if v == candidate {
			return b
		}
	}
	return -1
}

// Predecessors lists every 2-mer whose successor branches include
// candidate: the possible previous 2-mers consistent with candidate being
// next.
func (t *Tables) Predecessors(candidate string) []string {
	var out []string
	for key, branches := range t.next {
		if contains4(branches, candidate) {
			out = append(out, key)
		}
	}
	return out
}

// AllTwoMers lists the 16 distinct 2-mers over {A,C,G,T}, in the fixed order
// used by the Level-2 single-substitution search.
func AllTwoMers() []string {
	bases := [4]byte{'A', 'C', 'G', 'T'}
	out := make([]string, 0, 16)
	for _, hi := range bases {
		for _, lo := range bases {
			out = append(out, string([]byte{hi, lo}))
		}
	}
	return out
}
