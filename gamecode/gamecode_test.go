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

package gamecode

import (
	"reflect"
	"testing"
)

func TestParseSheLovesMe(t *testing.T) {
	// "0.6": digit 6 = 0b110 -> bits some(1), divide(2) at distance 1.
	r, err := Parse("0.6")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(r.Some, []int{1}) {
		t.Errorf("Some = %v, want [1]", r.Some)
	}
	if !reflect.DeepEqual(r.Divide, []int{1}) {
		t.Errorf("Divide = %v, want [1]", r.Divide)
	}
	if len(r.All) != 0 {
		t.Errorf("All = %v, want empty", r.All)
	}
	if r.Len != 1 {
		t.Errorf("Len = %d, want 1", r.Len)
	}
	if !r.Odd || r.Even {
		t.Errorf("Even/Odd = %v/%v, want false/true", r.Even, r.Odd)
	}
}

func TestParseDawsonsChess(t *testing.T) {
	// "0.137": digit 1 (bit0) at d=1, digit 3=0b011 (bit0,bit1) at d=2,
	// digit 7=0b111 (all bits) at d=3.
	r, err := Parse("0.137")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(r.All, []int{1, 2, 3}) {
		t.Errorf("All = %v, want [1,2,3]", r.All)
	}
	if !reflect.DeepEqual(r.Some, []int{2, 3}) {
		t.Errorf("Some = %v, want [2,3]", r.Some)
	}
	if !reflect.DeepEqual(r.Divide, []int{3}) {
		t.Errorf("Divide = %v, want [3]", r.Divide)
	}
}

func TestParseIgnoresLeadingDigit(t *testing.T) {
	withLeading, err := Parse("5.6")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	withZero, err := Parse("0.6")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// digit 5 = 0b101 would add distance 0 to All and Divide if it were read.
	if !reflect.DeepEqual(withLeading, withZero) {
		t.Errorf("leading digit changed Rules: %+v vs %+v", withLeading, withZero)
	}
}

func TestParseRejectsInvalidDigit(t *testing.T) {
	if _, err := Parse("0.1a2"); err == nil {
		t.Fatal("expected error for non-digit character")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty code")
	}
}

func TestParseRejectsNoDivideMoves(t *testing.T) {
	// digit 1 = 0b001: only the "remove whole heap" bit is set, no divide move.
	if _, err := Parse("0.1"); err == nil {
		t.Fatal("expected error: 0.1 has no divide move, which the rare-values engine requires")
	}
}

func TestMaxDivide(t *testing.T) {
	r, err := Parse("0.137")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := r.MaxDivide(); got != 3 {
		t.Errorf("MaxDivide() = %d, want 3", got)
	}
}

func TestMaxDivideSingleEntry(t *testing.T) {
	r, err := Parse("0.6")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := r.MaxDivide(); got != 1 {
		t.Errorf("MaxDivide() = %d, want 1", got)
	}
}
