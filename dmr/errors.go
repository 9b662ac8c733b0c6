package dmr

// SPDX-FileCopyrightText: The DMR Codec Authors

import "fmt"

// ErrInvalidBase reports a byte outside {A,C,G,T} encountered at Position
// of a segment. Encode also returns it, with Base unset, when the bit pair
// at bit offset Position is not made of '0' and '1' characters.
type ErrInvalidBase struct {
	Position int
	Base     byte
}

func (e *ErrInvalidBase) Error() string {
	return fmt.Sprintf("dmr: invalid base %q at position %d", e.Base, e.Position)
}

// ErrNotInScheme reports that strict decode found no entry in the mapping
// table for the 2-mer at Position: the segment does not conform to the
// scheme starting there.
type ErrNotInScheme struct {
	Position int
	TwoMer   string
}

func (e *ErrNotInScheme) Error() string {
	return fmt.Sprintf("dmr: 2-mer %q at position %d is not in the mapping scheme", e.TwoMer, e.Position)
}

// ErrIrrecoverableSegment reports that every correction level was exhausted
// without producing an RS-valid candidate for the segment at Index.
// Pipeline does not return it: it marks such a segment with Level -2.
type ErrIrrecoverableSegment struct {
	Index int
}

func (e *ErrIrrecoverableSegment) Error() string {
	return fmt.Sprintf("dmr: segment %d could not be recovered at any correction level", e.Index)
}

// ErrInvalidConfig reports a configuration that cannot be used. Encode
// returns it (with zero fields) when segmentIndex selects no initial-branch
// class, as a negative index does. RS parameter derivation reports its own
// failures as rs.InvalidParamsError.
type ErrInvalidConfig struct {
	C, CMin, LMin int
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("dmr: invalid RS configuration c=%d c_min=%d l_min=%d", e.C, e.CMin, e.LMin)
}

// ErrOddLength reports a segment whose base length is not even: segments
// are sequences of whole 2-mers.
type ErrOddLength struct {
	Length int
}

func (e *ErrOddLength) Error() string {
	return fmt.Sprintf("dmr: segment length %d is not a multiple of 2", e.Length)
}
