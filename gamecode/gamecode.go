// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package gamecode parses the short decimal codes that describe octal
// games (e.g. "0.104", "0.6") into the move-class rule sets the engine
// consumes. It does not implement any part of the rare-values mex
// algorithm itself; it is the thin external collaborator named in the
// engine's design as the "rule parser".
package gamecode

import (
	"fmt"
	"strings"
)

// Move-class bits within each game-code digit.
const (
	bitAll    = 0 // remove the whole heap
	bitSome   = 1 // remove d tokens, one heap remains
	bitDivide = 2 // remove d tokens, split the remainder into two heaps
)

// Rules is the immutable set of move classes derived from a game code.
type Rules struct {
	All    []int    // heap sizes d at which "remove whole heap" is legal
	Some   []int    // distances d for "remove d, keep one heap"
	Divide []int    // distances d for "remove d, split into two heaps", all parities
	ByPar  [2][]int // Divide partitioned by parity of d: ByPar[0] even, ByPar[1] odd
	Len    int       // number of digits after the separator
	Even   bool      // ByPar[0] is non-empty
	Odd    bool      // ByPar[1] is non-empty
}

// Parse decodes a game code of the form "d0.d1d2...dk" into Rules. The
// separator "." is conventional but semantically ignored: digits are
// re-indexed starting at 0 once it is stripped. d0 is accepted but
// ignored, since it describes a move at heap size 0, which is terminal.
func Parse(code string) (*Rules, error) {
	stripped := strings.ReplaceAll(code, ".", "")
	if stripped == "" {
		return nil, fmt.Errorf("gamecode: empty game code %q", code)
	}
	digits := make([]int, len(stripped))
	for i, r := range stripped {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("gamecode: invalid digit %q in game code %q", r, code)
		}
		digits[i] = int(r - '0')
	}

	r := &Rules{
		All:    extractBit(digits, bitAll),
		Some:   extractBit(digits, bitSome),
		Divide: extractBit(digits, bitDivide),
		Len:    len(digits) - 1,
	}
	for _, d := range r.Divide {
		r.ByPar[d&1] = append(r.ByPar[d&1], d)
	}
	r.Even = len(r.ByPar[0]) != 0
	r.Odd = len(r.ByPar[1]) != 0
	if len(r.Divide) == 0 {
		return nil, fmt.Errorf("gamecode: game code %q has no divide moves; rare-values engine requires at least one", code)
	}
	return r, nil
}

// extractBit returns the indices i>=1 whose digit has bit b set.
func extractBit(digits []int, b int) []int {
	mask := 1 << b
	var out []int
	for i, v := range digits {
		if i == 0 {
			continue
		}
		if v&mask == mask {
			out = append(out, i)
		}
	}
	return out
}

// MaxDivide returns the largest distance in Divide, used by the engine to
// bound the rare-values proof loop (spec's d*).
func (r *Rules) MaxDivide() int {
	m := r.Divide[0]
	for _, d := range r.Divide[1:] {
		if d > m {
			m = d
		}
	}
	return m
}
