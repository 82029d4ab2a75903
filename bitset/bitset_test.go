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

package bitset

import "testing"

func TestSetGetLowestClear(t *testing.T) {
	b := Make(16)
	if b.LowestClear() != 0 {
		t.Fatalf("fresh bitset: LowestClear() = %d, want 0", b.LowestClear())
	}
	b.Set(0)
	b.Set(1)
	b.Set(2)
	if got := b.LowestClear(); got != 3 {
		t.Fatalf("LowestClear() = %d, want 3", got)
	}
	b.Set(3)
	b.Set(5)
	if got := b.LowestClear(); got != 4 {
		t.Fatalf("LowestClear() = %d, want 4", got)
	}
	if !b.Get(5) || b.Get(6) {
		t.Fatalf("Get mismatch")
	}
}

func TestLowestClearAcrossWordBoundary(t *testing.T) {
	b := Make(200)
	for i := 0; i < 130; i++ {
		b.Set(i)
	}
	if got := b.LowestClear(); got != 130 {
		t.Fatalf("LowestClear() = %d, want 130", got)
	}
}

func TestClearAll(t *testing.T) {
	b := Make(16)
	b.Set(2)
	b.Set(9)
	b.ClearAll()
	if got := b.LowestClear(); got != 0 {
		t.Fatalf("after ClearAll LowestClear() = %d, want 0", got)
	}
}

func TestCountClear(t *testing.T) {
	b := Make(16)
	want := b.CountClear()
	b.Set(0)
	b.Set(1)
	if got := b.CountClear(); got != want-2 {
		t.Fatalf("CountClear() = %d, want %d", got, want-2)
	}
}

func TestOrFrom(t *testing.T) {
	a := Make(16)
	b := Make(16)
	a.Set(3)
	b.Set(4)
	a.OrFrom(b)
	if !a.Get(3) || !a.Get(4) {
		t.Fatalf("OrFrom did not union bits")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	b := Make(4)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range Get")
		}
	}()
	b.Get(b.Cap())
}

func TestCapacityFormula(t *testing.T) {
	// capacity = 2*next_pow2(largest) + 2
	b := Make(5)
	if got, want := b.Cap(), 2*8+2; got != want {
		t.Fatalf("Cap() = %d, want %d", got, want)
	}
}
