// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// lcio-dump displays the Λ⁰ decays found in LCIO files.
//
// Usage: lcio-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> lcio-dump -n 1 ./k_lambda_18x275_1.slcio
//	=== evt 0 (run=1, event=0) ===
//	Lambda0 #2: p+pi- (decay=1), t=-0.3216
//	  Lambda0 #2 p=(0.5, 0.1, 200) end=(1, 2, 3000)
//	  ├── p+ #3 p=(0.4, 0.1, 180) end=(0, 0, 0)
//	  └── pi- #4 p=(0.1, 0, 20) end=(0, 0, 0)
package main // import "github.com/go-lpc/hyperon/cmd/lcio-dump"

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/evtio"
	"github.com/go-lpc/hyperon/kine"
)

const usage = `lcio-dump displays the Λ⁰ decays found in LCIO files.

Usage: lcio-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lcio-dump -n 1 ./k_lambda_18x275_1.slcio
 === evt 0 (run=1, event=0) ===
 Lambda0 #2: p+pi- (decay=1), t=-0.3216
   Lambda0 #2 p=(0.5, 0.1, 200) end=(1, 2, 3000)
   ├── p+ #3 p=(0.4, 0.1, 180) end=(0, 0, 0)
   └── pi- #4 p=(0.1, 0, 20) end=(0, 0, 0)

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "lcio-dump: ", 0)

	var (
		fset = flag.NewFlagSet("lcio-dump", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to display (all if <= 0)")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
		depth = fset.Int("depth", 3, "depth of the displayed decay trees")
	)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}

	fnames, err := ana.ParseArgs(fset, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		msg.Printf("could not parse input arguments: %+v", err)
		return 1
	}

	if len(fnames) == 0 {
		fset.Usage()
		msg.Printf("missing path to input LCIO file")
		return 1
	}

	cfg, err := ana.Setup(*cname)
	if err != nil {
		msg.Printf("could not setup configuration: %+v", err)
		return 1
	}

	err = process(stdout, msg, cfg, *depth, *nevts, fnames)
	if err != nil {
		msg.Printf("could not dump files: %+v", err)
		return 1
	}

	return 0
}

func process(w io.Writer, msg *log.Logger, cfg ana.Config, depth int, nevts int64, fnames []string) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	sc := evtio.NewScanner(fnames, nevts, msg, cfg.Options()...)
	defer sc.Close()

	sel := cfg.Selector(decay.All)
	for sc.Next() {
		evt := sc.Event()
		fmt.Fprintf(wbuf, "=== evt %d (run=%d, event=%d) ===\n", evt.Index, evt.Run, evt.Number)
		for _, i := range sel.Select(evt) {
			dump(wbuf, evt, i, depth)
		}
	}

	err := sc.Err()
	if err != nil {
		return err
	}
	if sc.Events() == 0 {
		return fmt.Errorf("no event could be read")
	}

	return wbuf.Flush()
}

func dump(w io.Writer, evt *edm.Event, i, depth int) {
	var (
		p = evt.Particle(i)
		d = decay.Classify(evt, i)
	)
	fmt.Fprintf(w, "%s #%d: %v (decay=%d)", decay.Name(p.PDG), i, d.Channel, int(d.Channel))
	if t, ok := kine.BeamT(evt, i); ok {
		fmt.Fprintf(w, ", t=%.4f", t)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "  %s\n", line(p))
	tree(w, evt, p, "  ", depth-1, map[int]bool{i: true})
}

func tree(w io.Writer, evt *edm.Event, p *edm.Particle, indent string, depth int, seen map[int]bool) {
	if depth < 0 {
		return
	}
	for j, k := range p.Daughters {
		var (
			last   = j == len(p.Daughters)-1
			branch = "├── "
			next   = indent + "│   "
		)
		if last {
			branch = "└── "
			next = indent + "    "
		}
		dau := evt.Particle(k)
		fmt.Fprintf(w, "%s%s%s\n", indent, branch, line(dau))
		if seen[k] {
			continue
		}
		seen[k] = true
		tree(w, evt, dau, next, depth-1, seen)
	}
}

func line(p *edm.Particle) string {
	return fmt.Sprintf(
		"%s #%d p=(%g, %g, %g) end=(%g, %g, %g)",
		decay.Name(p.PDG), p.ID,
		p.P[0], p.P[1], p.P[2],
		p.EndPoint[0], p.EndPoint[1], p.EndPoint[2],
	)
}
