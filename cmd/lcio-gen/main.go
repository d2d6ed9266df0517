// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lcio-gen writes a small LCIO file of simulated Λ⁰ events, to
// exercise the CSV extraction tools without a full simulation campaign.
//
// Events cycle through the comma-separated list of event kinds.
//
// Usage: lcio-gen [OPTIONS]
package main // import "github.com/go-lpc/hyperon/cmd/lcio-gen"

import (
	"compress/flate"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go-hep.org/x/hep/lcio"

	"github.com/go-lpc/hyperon/internal/xcnv"
)

const usage = `Usage: lcio-gen [OPTIONS]

ex:
 $> lcio-gen -o out.slcio -n 100 -kinds=p+pi-,n+pi0,none
 lcio-gen: processing evt 0...
 lcio-gen: wrote 100 events to "out.slcio"

options:
`

func main() {
	os.Exit(xmain(os.Stderr, os.Args[1:]))
}

func xmain(stderr io.Writer, args []string) int {
	msg := log.New(stderr, "lcio-gen: ", 0)

	var (
		fset = flag.NewFlagSet("lcio-gen", flag.ContinueOnError)

		oname = fset.String("o", "out.slcio", "path to output LCIO file")
		nevts = fset.Int("n", 10, "number of events to generate")
		kinds = fset.String("kinds", "p+pi-,n+pi0", "comma-separated list of event kinds (p+pi-, n+pi0, none)")
		run   = fset.Int("run", 1, "run number")
		compr = fset.Int("lvl", flate.DefaultCompression, "compression level for output LCIO file")
	)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		msg.Printf("could not parse input arguments: %+v", err)
		return 1
	}

	if *oname == "" {
		fset.Usage()
		msg.Printf("invalid output LCIO file name")
		return 1
	}

	evts, err := events(*kinds, *nevts)
	if err != nil {
		msg.Printf("could not parse event kinds: %+v", err)
		return 1
	}

	err = process(msg, *oname, *compr, int32(*run), evts)
	if err != nil {
		msg.Printf("could not generate events: %+v", err)
		return 1
	}

	return 0
}

// events returns n event kinds, cycling through the comma-separated list.
func events(list string, n int) ([]xcnv.Kind, error) {
	var kinds []xcnv.Kind
	for _, v := range strings.Split(list, ",") {
		k, err := xcnv.ParseKind(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}

	out := make([]xcnv.Kind, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, kinds[i%len(kinds)])
	}
	return out, nil
}

func process(msg *log.Logger, oname string, lvl int, run int32, kinds []xcnv.Kind) error {
	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(lvl)

	err = xcnv.Generate(w, run, kinds, msg)
	if err != nil {
		return err
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	msg.Printf("wrote %d events to %q", len(kinds), oname)
	return nil
}
