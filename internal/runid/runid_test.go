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

package runid

import "testing"

func TestNewIsUniqueAndShort(t *testing.T) {
	a := New()
	b := New()
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("want 8-character ids, got %q (%d) and %q (%d)", a, len(a), b, len(b))
	}
	if a == b {
		t.Fatalf("two calls to New produced the same id: %q", a)
	}
}
