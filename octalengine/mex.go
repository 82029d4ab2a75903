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

package octalengine

import (
	"github.com/rogalski-wmii-uni-lodz-pl/octal/bitset"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/nimpos"
)

// Def computes G[n] by the naive Θ(n) mex: enumerate every legal move's
// resulting nimber into a fresh bitset and return its lowest clear bit.
// It is the ground truth, used while n <= rules.Len and as the
// cross-check oracle for Rc.
func (e *Engine) Def(n int) nimpos.Nimber {
	seen := bitset.Make(e.largest)
	for _, d := range e.rules.All {
		if n == d {
			seen.Set(0)
		}
	}
	for _, d := range e.rules.Some {
		if n > d {
			seen.Set(e.g[n-d])
		}
	}
	for _, d := range e.rules.Divide {
		if n > d {
			for i := 1; i <= (n-d)/2; i++ {
				seen.Set(e.g[i] ^ e.g[n-d-i])
			}
		}
	}
	return seen.LowestClear()
}

// Rc computes G[n] with the rare-values accelerated mex: phase A sets
// every cheap contribution (some-moves, the "split into equal heaps"
// zero, and every rare predecessor's XORs), phase B incrementally adds
// common-predecessor contributions until the current mex candidate is
// witnessed common in every active parity, and phase C (reached only if
// phase B is exhausted) falls back to full enumeration over the
// remaining tail, so Rc always equals Def.
func (e *Engine) Rc(n int) nimpos.Nimber {
	e.seen.ClearAll()

	e.setSome(n)
	e.setZeroIfSplitIntoEqualHeaps(n)
	e.setRare(n)

	dStar := e.rules.MaxDivide()

	m := e.seen.LowestClear()
	mp := nimpos.To(m, n&1)
	if e.classifier.BothCommon(mp) {
		return m
	}

	// Phase B: i = 1 .. n-d*-1 inclusive, the largest i for which every
	// active d still satisfies n-d > i.
	phaseBEnd := n - dStar - 1
	for i := 1; i <= phaseBEnd; i++ {
		e.addDivideContributions(n, i)
		m = e.seen.LowestClear()
		mp = nimpos.To(m, n&1)
		if e.classifier.BothCommon(mp) {
			return m
		}
	}

	// Phase C: the asymmetric tail, i = n-d* .. n-1, completing full
	// enumeration so the result always equals Def(n).
	for i := n - dStar; i < n; i++ {
		e.addDivideContributions(n, i)
	}
	return e.seen.LowestClear()
}

func (e *Engine) addDivideContributions(n, i int) {
	for _, d := range e.rules.Divide {
		if n-d > i {
			e.seen.Set(e.g[i] ^ e.g[n-d-i])
		}
	}
}

// setSome sets seen[G[n-d]] for every some-move distance d with n > d.
func (e *Engine) setSome(n int) {
	for _, d := range e.rules.Some {
		if n > d {
			e.seen.Set(e.g[n-d])
		}
	}
}

// setZeroIfSplitIntoEqualHeaps sets seen[0] when a divide move of the
// active parity can split n into two equal heaps, i.e. n-d is even for
// some active divide distance d (equivalently, n's parity matches an
// active divide parity): G[i] xor G[i] = 0.
func (e *Engine) setZeroIfSplitIntoEqualHeaps(n int) {
	if (n&1 == 0 && e.rules.Even) || (n&1 == 1 && e.rules.Odd) {
		e.seen.Set(0)
	}
}

// setRare sets seen[r xor G[n-d-i]] for every rare predecessor (i, r) of
// the matching parity and every divide distance d with n-d > i.
func (e *Engine) setRare(n int) {
	for parity := 0; parity < 2; parity++ {
		for _, d := range e.rules.ByPar[parity] {
			for _, rp := range e.classifier.Rares(parity) {
				if n-d > rp.N {
					e.seen.Set(rp.G ^ e.g[n-d-rp.N])
				}
			}
		}
	}
}
