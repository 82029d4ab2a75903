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

// Package octalengine orchestrates the rare-values accelerated mex
// engine: it grows the nimber sequence G one heap size at a time, using
// the naive mex during warm-up and the accelerated mex once enough of
// the sequence is known, feeding every new nimber back into the
// common/rare classifier.
package octalengine

import (
	"fmt"

	"github.com/rogalski-wmii-uni-lodz-pl/octal/bitset"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/classify"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/gamecode"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/nimpos"
)

// Engine computes and owns the growing nimber sequence G for a single
// octal game. It is not safe for concurrent use by multiple goroutines;
// independent games must use independent Engines (see the batch command
// in cmd/octal for how the CLI runs several of these concurrently).
type Engine struct {
	rules      *gamecode.Rules
	g          []nimpos.Nimber
	largest    int
	classifier *classify.Classifier
	seen       *bitset.Bitset

	// Logf receives one line per computed term, teacher-style
	// (cmd/sdb's logf / db.Builder.Logf). Defaults to a no-op.
	Logf func(format string, args ...any)

	// RunID tags every log line so that concurrently running engines
	// (e.g. from a batch job) can be told apart in combined output.
	RunID string

	// CrossCheck enables the "rc == def" assertion described in the
	// engine's design; production runs disable it once a game has been
	// validated over a sufficient prefix.
	CrossCheck bool

	// Redo, if set, overrides the classifier's default NeverRedo
	// strategy (see classify.PowerOfTwoRedo).
	Redo classify.RedoStrategy
}

// New creates an Engine for rules, preallocating G for cap terms
// (cap+1 entries, since G[0] is unused), with largest = 1 and the bitsets
// sized for it (the minimum nimber range before any term is computed).
func New(rules *gamecode.Rules, cap int) *Engine {
	e := &Engine{
		rules:      rules,
		g:          make([]nimpos.Nimber, cap+1),
		largest:    1,
		classifier: classify.New(rules.Even, rules.Odd, 1),
		seen:       bitset.Make(1),
		Logf:       func(string, ...any) {},
	}
	return e
}

// G returns the nimber computed for heap size n. n must already have
// been produced by Step.
func (e *Engine) G(n int) nimpos.Nimber { return e.g[n] }

// Sequence returns the engine's backing slice of computed nimbers
// (index 0 unused). Callers must not mutate it; it is exposed for
// fingerprinting and batch reporting, not for incremental building.
func (e *Engine) Sequence() []nimpos.Nimber { return e.g }

// Largest returns the largest nimber observed so far.
func (e *Engine) Largest() int { return e.largest }

// RareCounts returns len(rares[0]), len(rares[1]) for progress reporting.
func (e *Engine) RareCounts() (even, odd int) {
	return len(e.classifier.Rares(0)), len(e.classifier.Rares(1))
}

// Step computes G[n], appends it to the sequence, resizes the bitsets
// if a new largest nimber was observed, and offers the result to the
// classifier. n must equal the next unfilled index (1, 2, 3, ... in
// order); this is a programmer error otherwise.
func (e *Engine) Step(n int) nimpos.Nimber {
	if n >= len(e.g) {
		grown := make([]nimpos.Nimber, n+1)
		copy(grown, e.g)
		e.g = grown
	}

	var gn nimpos.Nimber
	if n <= e.rules.Len {
		gn = e.Def(n)
	} else if e.CrossCheck {
		check := e.Def(n)
		gn = e.Rc(n)
		if gn != check {
			panic(fmt.Sprintf("octalengine: cross-check failed at n=%d: rc=%d def=%d", n, gn, check))
		}
	} else {
		gn = e.Rc(n)
	}

	if gn > e.largest {
		e.largest = gn
		e.resize(gn)
	}

	e.classifier.Admit(n, gn)
	e.g[n] = gn

	if e.Redo != nil {
		e.classifier.SetRedoStrategy(e.Redo)
	}
	if e.classifier.ShouldRedo(n) {
		e.classifier.RedoFromSequence(n, e.g)
	}

	re, ro := e.RareCounts()
	e.Logf("[%s] n=%d g=%d rares=%d/%d", e.RunID, n, gn, re, ro)

	return gn
}

func (e *Engine) resize(largest int) {
	e.seen = bitset.Make(largest)
	e.classifier.Resize(largest)
}

// Run computes G[1..n] in order, returning the full sequence (index 0
// unused) and the final largest nimber observed. It is the small driver
// loop the engine's design treats as an external collaborator; cmd/octal
// is the real driver for interactive use.
func Run(rules *gamecode.Rules, n int) (g []nimpos.Nimber, largest int) {
	e := New(rules, n)
	for i := 1; i <= n; i++ {
		e.Step(i)
	}
	return e.g, e.largest
}
