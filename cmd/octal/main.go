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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/rogalski-wmii-uni-lodz-pl/octal/batchconfig"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/classify"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/gamecode"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/internal/fingerprint"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/internal/runid"
	"github.com/rogalski-wmii-uni-lodz-pl/octal/octalengine"
)

var (
	dashv           bool
	dashcheck       bool
	dashfingerprint bool
	dashredo        bool
	dashlog         string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose progress logging")
	flag.BoolVar(&dashcheck, "check", false, "cross-check rc() against def() at every term")
	flag.BoolVar(&dashfingerprint, "fingerprint", false, "print a final siphash fingerprint of G instead of every term")
	flag.BoolVar(&dashredo, "redo", false, "enable power-of-two redo of the common/rare classification")
	flag.StringVar(&dashlog, "log", "", "write progress log lines to this file (.gz for a compressed log)")
}

// exitf reports an error to stderr and exits with code, the teacher's
// exitf convention extended with the exit codes this CLI distinguishes
// (see SPEC_FULL.md §6/§7).
func exitf(code int, f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(code)
}

func logf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

// gzLogCloser wraps a gzip.Writer and the underlying file so both get
// closed (and the gzip trailer gets flushed) together.
type gzLogCloser struct {
	gw *gzip.Writer
	f  *os.File
}

func (g *gzLogCloser) Write(p []byte) (int, error) { return g.gw.Write(p) }

func (g *gzLogCloser) Close() error {
	if err := g.gw.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// openLog opens path for the engine's progress log, teacher-style
// suffix-driven encoder choice (cmd/sdb's unpack picks its decoder the
// same way, off the name rather than a flag). A ".gz" suffix gets a real
// gzip container, not a raw deflate stream, so the file is readable by
// gunzip.
func openLog(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gw, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzLogCloser{gw: gw, f: f}, nil
	}
	return f, nil
}

// lineLogf adapts an io.Writer into an octalengine.Engine.Logf callback.
func lineLogf(w io.Writer) func(string, ...interface{}) {
	return func(f string, args ...interface{}) {
		if f[len(f)-1] != '\n' {
			f += "\n"
		}
		fmt.Fprintf(w, f, args...)
	}
}

func parseArgs(args []string) (*gamecode.Rules, int) {
	if len(args) != 2 {
		exitf(1, "usage: octal run [flags] <game-code> <N>")
	}
	rules, err := gamecode.Parse(args[0])
	if err != nil {
		exitf(1, "parsing game code %q: %s", args[0], err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		exitf(1, "N must be a positive integer, got %q", args[1])
	}
	return rules, n
}

// runWithRecover runs fn, turning any panic (an octalengine invariant
// violation) into an exit-code-2 report naming the panic message,
// instead of an unrecovered stack trace.
func runWithRecover(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			exitf(2, "invariant violation: %v", r)
		}
	}()
	fn()
}

func cmdRun(args []string) {
	// flags may also follow the "run" subcommand
	flag.CommandLine.Parse(args)
	rules, n := parseArgs(flag.Args())

	var logw io.WriteCloser = nopCloser{io.Discard}
	if dashlog != "" {
		var err error
		logw, err = openLog(dashlog)
		if err != nil {
			exitf(1, "opening log file: %s", err)
		}
	}
	defer logw.Close()

	e := octalengine.New(rules, n)
	e.RunID = runid.New()
	e.CrossCheck = dashcheck
	if dashredo {
		e.Redo = classify.PowerOfTwoRedo
	}
	if dashlog != "" {
		e.Logf = lineLogf(logw)
	} else if dashv {
		e.Logf = lineLogf(os.Stderr)
	}

	runWithRecover(func() {
		for i := 1; i <= n; i++ {
			g := e.Step(i)
			if !dashfingerprint {
				re, ro := e.RareCounts()
				fmt.Printf("%d: %d %d %d\n", i, g, re, ro)
			}
		}
	})

	if dashfingerprint {
		fmt.Printf("fingerprint: %016x\n", fingerprint.Of(e.Sequence(), n))
	}
}

func cmdValidate(args []string) {
	rules, n := parseArgs(args)
	e := octalengine.New(rules, n)
	e.CrossCheck = true
	runWithRecover(func() {
		for i := 1; i <= n; i++ {
			e.Step(i)
		}
	})
	fmt.Printf("validate: %s agrees rc==def for n=1..%d\n", args[0], n)
}

func cmdBatch(args []string) {
	if len(args) != 1 {
		exitf(1, "usage: octal batch <config.yaml>")
	}
	cfg, err := batchconfig.Load(args[0])
	if err != nil {
		exitf(3, "%s", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed []string

	for _, job := range cfg.Jobs {
		job := job
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := job.Name
			if name == "" {
				name = job.Game
			}
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failed = append(failed, fmt.Sprintf("%s: %v", name, r))
					mu.Unlock()
				}
			}()

			rules, err := gamecode.Parse(job.Game)
			if err != nil {
				mu.Lock()
				failed = append(failed, fmt.Sprintf("%s: %v", name, err))
				mu.Unlock()
				return
			}

			var logw io.WriteCloser = nopCloser{io.Discard}
			if job.LogPath != "" {
				logw, err = openLog(job.LogPath)
				if err != nil {
					mu.Lock()
					failed = append(failed, fmt.Sprintf("%s: opening log: %v", name, err))
					mu.Unlock()
					return
				}
			}
			defer logw.Close()

			e := octalengine.New(rules, job.N)
			e.RunID = runid.New()
			e.CrossCheck = job.Check
			e.Logf = lineLogf(logw)
			for i := 1; i <= job.N; i++ {
				e.Step(i)
			}
			logf("job %s (%s): computed G[1..%d]", name, job.Game, job.N)
		}()
	}
	wg.Wait()

	if len(failed) > 0 {
		for _, f := range failed {
			fmt.Fprintln(os.Stderr, f)
		}
		os.Exit(2)
	}
}

// nopCloser adapts an io.Writer with no meaningful Close into an
// io.WriteCloser, for when -log is not set.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s run [-check] [-v] [-fingerprint] [-log path] [-redo] <game-code> <N>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        compute G[1..N] for a game code\n")
		fmt.Fprintf(os.Stderr, "    %s batch <config.yaml>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        run several (game, N) jobs concurrently\n")
		fmt.Fprintf(os.Stderr, "    %s validate <game-code> <N>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        cross-check rc() against def() for n=1..N\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		cmdRun(args[1:])
	case "batch":
		cmdBatch(args[1:])
	case "validate":
		cmdValidate(args[1:])
	default:
		exitf(1, "commands: run, batch, validate")
	}
}
