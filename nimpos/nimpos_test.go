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

package nimpos

import "testing"

func TestRoundTrip(t *testing.T) {
	for g := 0; g < 64; g++ {
		for p := 0; p < 2; p++ {
			np := To(g, p)
			gotG, gotP := From(np)
			if gotG != g || gotP != p {
				t.Fatalf("From(To(%d,%d)) = (%d,%d)", g, p, gotG, gotP)
			}
		}
	}
}

func TestFromNimposModTwo(t *testing.T) {
	// from_nimpos(to_nimpos(g, n)) == (g, n mod 2)
	for g := 0; g < 16; g++ {
		for n := 0; n < 8; n++ {
			np := To(g, n&1)
			gotG, gotP := From(np)
			if gotG != g || gotP != n%2 {
				t.Fatalf("From(To(%d, %d%%2)) = (%d,%d), want (%d,%d)", g, n, gotG, gotP, g, n%2)
			}
		}
	}
}

func TestXorCommutative(t *testing.T) {
	for a := 0; a < 32; a++ {
		for b := 0; b < 32; b++ {
			for d := 0; d < 4; d++ {
				if Xor(a, b, d) != Xor(b, a, d) {
					t.Fatalf("Xor(%d,%d,%d) != Xor(%d,%d,%d)", a, b, d, b, a, d)
				}
			}
		}
	}
}

func TestXorAssociativeUnderConsistentParity(t *testing.T) {
	// xor(xor(a,b,d1), c, d2) == xor(a, xor(b,c,d1), d2) when the parity of
	// the combined divide length matches on both sides.
	a, b, c := 5, 11, 22
	d1, d2 := 3, 2
	left := Xor(Xor(a, b, d1), c, d2)
	right := Xor(a, Xor(b, c, d1), d2)
	if left != right {
		t.Fatalf("associativity mismatch: left=%d right=%d", left, right)
	}
}
