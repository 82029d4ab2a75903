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

// Package nimpos provides the position-tagged nimber type used throughout
// the octal-game engine: a (nimber, parity) pair packed into a single int
// so it can key a set or index a bitset.
package nimpos

// Nimber is a Sprague-Grundy value: the mex of a position's children.
type Nimber = int

// Nimpos is a nimber tagged with the parity of the heap position it was
// observed at, encoded as (nimber << 1) | parity.
type Nimpos = int

// To packs a nimber and a heap-position parity into a Nimpos.
func To(g Nimber, parity int) Nimpos {
	return (g << 1) | (parity & 1)
}

// From unpacks a Nimpos into its nimber and parity.
func From(np Nimpos) (g Nimber, parity int) {
	return np >> 1, np & 1
}

// Xor combines two tagged nimbers observed at positions separated by a
// divide-move of length d: the nimbers XOR, and the parities XOR with the
// parity of d itself (splitting into two heaps flips parity iff d is odd).
func Xor(a, b Nimpos, d int) Nimpos {
	return a ^ b ^ (d & 1)
}
