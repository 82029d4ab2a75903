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

// Package fingerprint computes a stable digest of a prefix of a G
// sequence, so long runs can be diffed between regression snapshots
// without embedding the full sequence as a literal fixture.
package fingerprint

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/nimpos"
)

// fixed key pair: this fingerprint is a change-detector, not a MAC, so
// the key need not be secret or per-run.
const (
	k0 = 0x6f6374616c5f6b30
	k1 = 0x6f6374616c5f6b31
)

// Of hashes g[1:n+1] (G[0] is always unused and excluded) into a single
// uint64. Two sequences with the same fingerprint agree on every term
// in that range with overwhelming probability; a differing fingerprint
// proves they disagree somewhere.
func Of(g []nimpos.Nimber, n int) uint64 {
	buf := make([]byte, 8*n)
	for i := 1; i <= n; i++ {
		binary.LittleEndian.PutUint64(buf[8*(i-1):], uint64(g[i]))
	}
	return siphash.Hash(k0, k1, buf)
}
