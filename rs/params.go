package rs

// SPDX-FileCopyrightText: The DMR Codec Authors

import "math"

// Params is the result of reconciling a desired parity-byte count against a
// minimum floor (CMin) and a minimum segment length (LMin, payload plus
// parity): the smallest
// viable parity size, and the resulting payload size per block.
type Params struct {
	C    int // resolved parity byte count
	L    int // resolved payload byte count per block
}

// Recalculate derives the smallest usable Reed-Solomon parity size (and the
// payload size it implies) from a desired parity count c, a floor c_min
// below which the parity size should not be reduced, and a minimum segment
// length l_min in bytes (payload plus parity). Smaller blocks correct proportionally fewer
// errors each, but many small blocks are collectively more resilient than
// one large one carrying the same total parity fraction, which is why the
// parity size is shrunk as far as the constraints allow.
//
// If c_min exceeds c, c_min is silently demoted to 0 (conflicting
// constraints favor the explicit c).
func Recalculate(c, cMin, lMin int) (Params, error) {
	if c <= 0 || c >= 255 {
		return Params{}, &InvalidParamsError{C: c, CMin: cMin, LMin: lMin}
	}
	if cMin > c {
		cMin = 0
	}

	var newC, payload int

	if lMin == 0 {
		if cMin == 0 {
			payload = int(math.Floor(float64(255-c) / float64(c)))
			newC = 1
		} else {
			payload = int(math.Floor(float64(cMin) * float64(255-c) / float64(c)))
			if payload != 0 {
				newC = cMin
			} else {
				maxDownsized := 1 / (float64(255-c) / float64(c))
				newC = 1
				payload = int(math.Floor(maxDownsized * float64(255-c) / float64(c)))
			}
		}
	} else {
		if cMin == 0 {
			newC = int(math.Ceil(float64(lMin) * (float64(c) / 255)))
			payload = lMin - newC
			if newC == 1 && lMin == 1 {
				payload = 1
			}
		} else {
			maxDownsized := int(math.Ceil(float64(lMin) * (float64(c) / 255)))
			if cMin < maxDownsized {
				newC = maxDownsized
				payload = lMin - newC
			} else {
				newC = cMin
				payload = lMin - maxDownsized
			}
		}
	}

	if newC < 1 || payload < 1 {
		return Params{}, &InvalidParamsError{C: c, CMin: cMin, LMin: lMin}
	}

	return Params{C: newC, L: payload}, nil
}

// InvalidParamsError reports RS parameters that could not be reconciled
// into a usable (parity, payload) pair.
type InvalidParamsError struct {
	C, CMin, LMin int
}

func (e *InvalidParamsError) Error() string {
	return "rs: cannot reconcile parameters into a valid block size"
}
