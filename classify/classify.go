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

// Package classify implements the common/rare classifier that lets the
// rare-values mex prove termination without enumerating every split: a
// tagged nimber is either "common" (provably closed under the
// parity-twisted XOR) or "rare" (appended to a per-parity list that must
// be enumerated explicitly on every later heap size).
package classify

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/rogalski-wmii-uni-lodz-pl/octal/bitset"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/nimpos"
)

// RarePair is a single (heap size, nimber) observation that failed common
// admission.
type RarePair struct {
	N int
	G nimpos.Nimber
}

// AdmitFunc decides whether np may join the common set S for parity p.
// The default, Admit, implements the Sidon-closure rule from the engine's
// design; games with documented admission fragilities (see
// octalengine/engine_test.go for "0.104") can supply an alternative for experimentation.
type AdmitFunc func(common map[nimpos.Nimpos]struct{}, np nimpos.Nimpos, parity int) bool

// RedoStrategy decides whether, after producing G[n], the classifier
// should be rebuilt from scratch using the accumulated tag counts.
type RedoStrategy func(n int) bool

// NeverRedo never triggers a rebuild; it is the default.
func NeverRedo(int) bool { return false }

// PowerOfTwoRedo triggers a rebuild exactly when n is a power of two,
// reproducing the original reference implementation's optional sweep.
func PowerOfTwoRedo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Classifier holds the per-parity common/rare state plus the both_common
// witness bitset the rare-values mex uses to terminate.
type Classifier struct {
	Even, Odd bool

	common     [2]map[nimpos.Nimpos]struct{}
	rares      [2][]RarePair
	bothCommon *bitset.Bitset

	admit AdmitFunc
	redo  RedoStrategy

	counts map[nimpos.Nimpos]int // np -> number of times observed, for PowerOfTwoRedo
}

// New creates a classifier for a game whose divide moves are active at
// the given parities, with the both_common bitset sized for the tags of
// nimbers up to largest (bitset.Make(2*largest)).
func New(even, odd bool, largest int) *Classifier {
	return &Classifier{
		Even:       even,
		Odd:        odd,
		common:     [2]map[nimpos.Nimpos]struct{}{{}, {}},
		bothCommon: bitset.Make(2 * largest),
		admit:      Admit,
		redo:       NeverRedo,
		counts:     make(map[nimpos.Nimpos]int),
	}
}

// SetAdmitFunc overrides the admission predicate. Must be called before
// any observation is admitted.
func (c *Classifier) SetAdmitFunc(f AdmitFunc) { c.admit = f }

// SetRedoStrategy overrides the redo-sweep strategy.
func (c *Classifier) SetRedoStrategy(f RedoStrategy) { c.redo = f }

// Common reports the common set for parity p, for tests and invariant
// checks. Callers must not mutate the returned map.
func (c *Classifier) Common(p int) map[nimpos.Nimpos]struct{} { return c.common[p] }

// Rares reports the rare list for parity p in insertion order. Callers
// must not mutate the returned slice.
func (c *Classifier) Rares(p int) []RarePair { return c.rares[p] }

// BothCommon reports whether np is common in every active parity.
func (c *Classifier) BothCommon(np nimpos.Nimpos) bool {
	if np >= c.bothCommon.Cap() {
		return false
	}
	return c.bothCommon.Get(np)
}

// Admit offers a freshly computed (n, g) to the classifier for every
// active parity, and updates BothCommon accordingly. g must be a value
// already known to the caller's nimber sequence, i.e. this must be
// called in ascending-n order.
func (c *Classifier) Admit(n int, g nimpos.Nimber) {
	np := nimpos.To(g, n&1)
	c.counts[np]++

	ec := true
	if c.Even {
		ec = c.admitOne(n, g, 0)
	}
	oc := true
	if c.Odd {
		oc = c.admitOne(n, g, 1)
	}
	if ec && oc {
		c.setBothCommon(np)
	}
}

// ShouldRedo reports whether the configured RedoStrategy wants a rebuild
// after observing n. The engine calls RedoFromSequence when this is true.
func (c *Classifier) ShouldRedo(n int) bool { return c.redo(n) }

func (c *Classifier) admitOne(n int, g nimpos.Nimber, parity int) bool {
	np := nimpos.To(g, n&1)
	if _, ok := c.common[parity][np]; ok {
		return true
	}
	if c.tryAdmit(np, parity) {
		return true
	}
	c.rares[parity] = append(c.rares[parity], RarePair{N: n, G: g})
	return false
}

// tryAdmit attempts to insert np into common[parity], enforcing that
// nimber 0's tag (np == parity) never joins.
func (c *Classifier) tryAdmit(np nimpos.Nimpos, parity int) bool {
	notZero := np != parity
	if notZero && c.admit(c.common[parity], np, parity) {
		c.common[parity][np] = struct{}{}
		return true
	}
	return false
}

// setBothCommon marks np as common in every active parity. np exceeding
// the current capacity is a programmer error: the engine must call
// Resize whenever largest grows, before admitting the nimber that grew
// it, per the core's invariant-violation error-handling design.
func (c *Classifier) setBothCommon(np nimpos.Nimpos) {
	c.bothCommon.Set(np)
}

// Resize rebuilds the both_common bitset as bitset.Make(2*largest),
// preserving every previously set bit via bulk OR, per the engine's
// "allocate-new + OR" resize rule.
func (c *Classifier) Resize(largest int) {
	fresh := bitset.Make(2 * largest)
	fresh.OrFrom(c.bothCommon)
	c.bothCommon = fresh
}

// Admit requires np != parity (nimber 0 can never be common) and the
// Sidon-closure property: xor_p(np,np) != np and not in S, and for every
// m in S, xor_p(np,m) is not in S, and parity itself is not in S.
func Admit(common map[nimpos.Nimpos]struct{}, np nimpos.Nimpos, parity int) bool {
	withItself := nimpos.Xor(np, np, parity)
	if withItself == np {
		return false
	}
	if _, ok := common[withItself]; ok {
		return false
	}
	for m := range common {
		x := nimpos.Xor(np, m, parity)
		if _, ok := common[x]; ok {
			return false
		}
	}
	_, parityCommon := common[parity]
	return !parityCommon
}

// countedTag pairs a tagged nimber with the number of times it has been
// observed, for sorting ahead of a redo sweep.
type countedTag[K constraints.Integer] struct {
	tag   K
	count int
}

// sortByCountDesc orders tags by descending count, ties broken by
// ascending tag, matching the original implementation's redo ordering.
func sortByCountDesc[K constraints.Integer](tags []countedTag[K]) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].count != tags[j].count {
			return tags[i].count > tags[j].count
		}
		return tags[i].tag < tags[j].tag
	})
}

// RedoFromSequence rebuilds the classifier from scratch: it clears
// common/rares/both_common, then re-admits every distinct tagged nimber
// seen so far in descending-count order (most frequent tags become
// common first and shadow rarer ones), and finally replays (i, g[i]) for
// i in [1,n] in ascending order to repopulate the rare lists against the
// freshly rebuilt common sets. g must have valid entries for indices
// [1,n].
func (c *Classifier) RedoFromSequence(n int, g []nimpos.Nimber) {
	entries := make([]countedTag[nimpos.Nimpos], 0, len(c.counts))
	for np, count := range c.counts {
		entries = append(entries, countedTag[nimpos.Nimpos]{tag: np, count: count})
	}
	sortByCountDesc(entries)

	c.common[0] = map[nimpos.Nimpos]struct{}{}
	c.common[1] = map[nimpos.Nimpos]struct{}{}
	c.bothCommon.ClearAll()

	for _, e := range entries {
		ec, oc := true, true
		if c.Even {
			ec = c.tryAdmit(e.tag, 0)
		}
		if c.Odd {
			oc = c.tryAdmit(e.tag, 1)
		}
		if ec && oc {
			c.setBothCommon(e.tag)
		}
	}

	c.rares[0] = nil
	c.rares[1] = nil
	for i := 1; i <= n; i++ {
		np := nimpos.To(g[i], i&1)
		if c.Even {
			if _, ok := c.common[0][np]; !ok {
				c.rares[0] = append(c.rares[0], RarePair{N: i, G: g[i]})
			}
		}
		if c.Odd {
			if _, ok := c.common[1][np]; !ok {
				c.rares[1] = append(c.rares[1], RarePair{N: i, G: g[i]})
			}
		}
	}
}
