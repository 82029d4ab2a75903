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

// Package bitset implements a dense, fixed-capacity bitset over small
// non-negative integers, sized so that a mex scan over XOR-combined
// nimbers never runs off the end of the backing storage.
package bitset

import (
	"fmt"
	"math/bits"

	"github.com/rogalski-wmii-uni-lodz-pl/octal/ints"
)

const wordBits = 64

// Bitset is a dense bitset over [0, Cap()).
type Bitset struct {
	words []uint64
	cap   int
}

// Make returns a Bitset with capacity 2*nextPow2(largest)+2, matching the
// headroom a mex scan needs after XOR-ing two nimbers each <= largest.
func Make(largest int) *Bitset {
	cap := 2*int(ints.NextPow2(uint(maxInt(largest, 1)))) + 2
	return &Bitset{
		words: make([]uint64, ints.ChunkCount(uint(cap), uint(wordBits))),
		cap:   cap,
	}
}

func maxInt(a, b int) int {
	return ints.Max(a, b)
}

// Cap returns the number of addressable bits.
func (b *Bitset) Cap() int {
	return b.cap
}

func (b *Bitset) checkRange(i int) {
	if i < 0 || i >= b.cap {
		panic(fmt.Sprintf("bitset: index %d out of range [0,%d)", i, b.cap))
	}
}

// Set sets bit i. Panics if i is out of range.
func (b *Bitset) Set(i int) {
	b.checkRange(i)
	ints.SetBit(b.words, i)
}

// Get reports whether bit i is set. Panics if i is out of range.
func (b *Bitset) Get(i int) bool {
	b.checkRange(i)
	return ints.TestBit(b.words, i)
}

// ClearAll clears every bit without reallocating.
func (b *Bitset) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// LowestClear returns the smallest index whose bit is clear. Undefined
// (panics) if every bit in the bitset is set; the capacity formula in
// Make guarantees this never happens for the mex scans this type backs.
func (b *Bitset) LowestClear() int {
	for wi, w := range b.words {
		if w != ^uint64(0) {
			idx := wi*wordBits + bits.TrailingZeros64(^w)
			if idx < b.cap {
				return idx
			}
			break
		}
	}
	panic("bitset: LowestClear called on a full bitset")
}

// CountClear returns the number of clear bits in [0, Cap()).
func (b *Bitset) CountClear() int {
	clear := 0
	full := b.cap / wordBits
	for i := 0; i < full; i++ {
		clear += wordBits - bits.OnesCount64(b.words[i])
	}
	if rem := b.cap % wordBits; rem != 0 {
		mask := (uint64(1) << rem) - 1
		clear += rem - bits.OnesCount64(b.words[full]&mask)
	}
	return clear
}

// OrFrom ORs every bit of other into b, growing b's backing storage to
// cover other's capacity if needed, but never shrinking b.
func (b *Bitset) OrFrom(other *Bitset) {
	if other.cap > b.cap {
		b.cap = other.cap
	}
	need := ints.ChunkCount(uint(b.cap), uint(wordBits))
	if uint(len(b.words)) < need {
		grown := make([]uint64, need)
		copy(grown, b.words)
		b.words = grown
	}
	for i, w := range other.words {
		b.words[i] |= w
	}
}
